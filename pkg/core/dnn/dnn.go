// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package dnn defines the neural-network primitives capability that DNN plugins implement, and the typed
// view of the plugin registry used to register and look up DNN factories.
package dnn

import (
	"fmt"

	"github.com/gomlx/accelreg/pkg/core/plugin"
)

// VersionInfo of the library backing a DNN plugin.
type VersionInfo struct {
	Major, Minor, Patch int
}

// String implements fmt.Stringer.
func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ActivationMode enumerates the activation functions a DNN plugin may provide.
type ActivationMode int

const (
	ActivationNone ActivationMode = iota
	ActivationSigmoid
	ActivationRelu
	ActivationRelu6
	ActivationTanh
)

// Support is implemented by DNN plugins, for one device.
type Support interface {
	// Version of the underlying library.
	Version() (VersionInfo, error)

	// SupportsActivation returns whether the plugin implements the activation function.
	SupportsActivation(mode ActivationMode) bool
}

// Factory creates the DNN Support for the given executor.
type Factory func(exec plugin.Executor) (Support, error)

// Factories returns the view of the registry with the DNN factories.
func Factories(r *plugin.Registry) plugin.Table[Factory] {
	return plugin.NewTable[Factory](r, plugin.KindDnn)
}
