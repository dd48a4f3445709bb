// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package host provides the reference plugins for the Host platform (the CPU), backed by gonum:
// "gonum-blas" for BLAS and "gonum-fft" for FFT. There is no host DNN plugin.
//
// Simply import it with import _ "github.com/gomlx/accelreg/backends/host" to have its plugins registered in
// plugin.Instance() as the Host defaults. Programs managing their own registry call Register instead.
package host

import (
	"github.com/gomlx/accelreg/pkg/core/blas"
	"github.com/gomlx/accelreg/pkg/core/fft"
	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/gomlx/accelreg/pkg/core/plugin"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

const (
	// BlasName is the name of the host BLAS plugin.
	BlasName = "gonum-blas"

	// FftName is the name of the host FFT plugin.
	FftName = "gonum-fft"
)

var (
	// BlasId identifies the host BLAS plugin.
	BlasId = plugin.NewId()

	// FftId identifies the host FFT plugin.
	FftId = plugin.NewId()
)

// Register the host plugins in r for the Host platform, and sets them as the Host defaults.
func Register(r *plugin.Registry) error {
	blasFactories := blas.Factories(r)
	if err := blasFactories.Register(platform.Host, BlasId, BlasName, newBlas); err != nil {
		return errors.WithMessage(err, "host backend")
	}
	if err := blasFactories.SetDefault(platform.Host, BlasId); err != nil {
		return errors.WithMessage(err, "host backend")
	}
	fftFactories := fft.Factories(r)
	if err := fftFactories.Register(platform.Host, FftId, FftName, newFft); err != nil {
		return errors.WithMessage(err, "host backend")
	}
	if err := fftFactories.SetDefault(platform.Host, FftId); err != nil {
		return errors.WithMessage(err, "host backend")
	}
	return nil
}

// Registers the host plugins in the process-wide registry.
func init() {
	if err := Register(plugin.Instance()); err != nil {
		exceptions.Panicf("%+v", err)
	}
}
