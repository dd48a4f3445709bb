// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package blas defines the dense linear algebra capability that BLAS plugins implement, and the typed
// view of the plugin registry used to register and look up BLAS factories.
package blas

import (
	"github.com/gomlx/accelreg/pkg/core/plugin"
)

// Support is implemented by BLAS plugins, for one device.
//
// Matrices are dense float64 in row-major order.
type Support interface {
	// Dot returns the inner product of x and y, which must have the same length.
	Dot(x, y []float64) (float64, error)

	// Axpy computes y += alpha*x in place. x and y must have the same length.
	Axpy(alpha float64, x, y []float64) error

	// Gemm computes c = alpha * op(a) * op(b) + beta * c, where op(a) is m×k, op(b) is k×n and c is m×n.
	// op(a) is a transposed if transA is true, and similarly for b.
	// Dimensions may be zero: if k is 0, c is only scaled by beta.
	Gemm(transA, transB bool, m, n, k int, alpha float64, a, b []float64, beta float64, c []float64) error
}

// Factory creates the BLAS Support for the given executor.
type Factory func(exec plugin.Executor) (Support, error)

// Factories returns the view of the registry with the BLAS factories.
func Factories(r *plugin.Registry) plugin.Table[Factory] {
	return plugin.NewTable[Factory](r, plugin.KindBlas)
}
