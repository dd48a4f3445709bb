// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package fft defines the fast Fourier transform capability that FFT plugins implement, and the typed
// view of the plugin registry used to register and look up FFT factories.
package fft

import (
	"github.com/gomlx/accelreg/pkg/core/plugin"
)

// Support is implemented by FFT plugins, for one device.
//
// The four transforms match the FFT types of XLA: forward and inverse complex transforms,
// and the real-to-complex / complex-to-real pair. Scaling conventions follow the underlying library.
type Support interface {
	// Forward transforms a complex sequence into its len(seq) complex coefficients.
	Forward(seq []complex128) ([]complex128, error)

	// Inverse transforms len(coeff) complex coefficients back into a complex sequence.
	Inverse(coeff []complex128) ([]complex128, error)

	// ForwardReal transforms a real sequence of length n into its n/2+1 complex coefficients.
	ForwardReal(seq []float64) ([]complex128, error)

	// InverseReal transforms n/2+1 complex coefficients back into a real sequence of length n.
	InverseReal(coeff []complex128, n int) ([]float64, error)
}

// Factory creates the FFT Support for the given executor.
type Factory func(exec plugin.Executor) (Support, error)

// Factories returns the view of the registry with the FFT factories.
func Factories(r *plugin.Registry) plugin.Table[Factory] {
	return plugin.NewTable[Factory](r, plugin.KindFft)
}
