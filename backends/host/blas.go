// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package host

import (
	"github.com/gomlx/accelreg/pkg/core/blas"
	"github.com/gomlx/accelreg/pkg/core/plugin"
	"github.com/pkg/errors"
	gonumblas "gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// blasSupport implements blas.Support with gonum's blas64 package. It is stateless.
type blasSupport struct{}

var _ blas.Support = blasSupport{}

// newBlas is the blas.Factory of the host BLAS plugin.
func newBlas(_ plugin.Executor) (blas.Support, error) {
	return blasSupport{}, nil
}

func vector(x []float64) blas64.Vector {
	return blas64.Vector{N: len(x), Data: x, Inc: 1}
}

// Dot implements blas.Support.
func (blasSupport) Dot(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.Errorf("Dot: x and y have different lengths (%d and %d)", len(x), len(y))
	}
	if len(x) == 0 {
		return 0, nil
	}
	return blas64.Dot(vector(x), vector(y)), nil
}

// Axpy implements blas.Support.
func (blasSupport) Axpy(alpha float64, x, y []float64) error {
	if len(x) != len(y) {
		return errors.Errorf("Axpy: x and y have different lengths (%d and %d)", len(x), len(y))
	}
	if len(x) == 0 {
		return nil
	}
	blas64.Axpy(alpha, vector(x), vector(y))
	return nil
}

// general returns the row-major matrix for an operand of Gemm, whose op() is rows×cols.
func general(name string, data []float64, rows, cols int, transposed bool) (blas64.General, error) {
	if len(data) != rows*cols {
		return blas64.General{}, errors.Errorf("Gemm: %s has %d elements, wanted %d×%d=%d",
			name, len(data), rows, cols, rows*cols)
	}
	if transposed {
		rows, cols = cols, rows
	}
	return blas64.General{Rows: rows, Cols: cols, Data: data, Stride: cols}, nil
}

func transpose(transposed bool) gonumblas.Transpose {
	if transposed {
		return gonumblas.Trans
	}
	return gonumblas.NoTrans
}

// Gemm implements blas.Support.
func (blasSupport) Gemm(transA, transB bool, m, n, k int, alpha float64, a, b []float64, beta float64,
	c []float64) error {
	if m < 0 || n < 0 || k < 0 {
		return errors.Errorf("Gemm: dimensions must not be negative, got m=%d, n=%d, k=%d", m, n, k)
	}
	matA, err := general("a", a, m, k, transA)
	if err != nil {
		return err
	}
	matB, err := general("b", b, k, n, transB)
	if err != nil {
		return err
	}
	matC, err := general("c", c, m, n, false)
	if err != nil {
		return err
	}
	if m == 0 || n == 0 {
		return nil
	}
	if k == 0 {
		// Empty product: c = beta * c.
		for i := range c {
			if beta == 0 {
				c[i] = 0
			} else {
				c[i] *= beta
			}
		}
		return nil
	}
	blas64.Gemm(transpose(transA), transpose(transB), alpha, matA, matB, beta, matC)
	return nil
}
