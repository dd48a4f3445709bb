// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package host

import (
	"math/cmplx"
	"testing"

	"github.com/gomlx/accelreg/pkg/core/blas"
	"github.com/gomlx/accelreg/pkg/core/executor"
	"github.com/gomlx/accelreg/pkg/core/fft"
	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/gomlx/accelreg/pkg/core/plugin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHostExecutor(t *testing.T) *executor.Executor {
	r := plugin.New(platform.DefaultDirectory())
	require.NoError(t, Register(r))
	return executor.New(r, platform.Host, 0, plugin.DefaultConfig())
}

func TestRegister(t *testing.T) {
	// init() registered the plugins in the process-wide registry.
	r := plugin.Instance()
	assert.True(t, blas.Factories(r).HasFactory(platform.Host, BlasId))
	assert.True(t, fft.Factories(r).HasFactory(platform.Host, FftId))
	assert.Equal(t, BlasId, r.DefaultFactory(platform.Host, plugin.KindBlas))
	assert.Equal(t, FftId, r.DefaultFactory(platform.Host, plugin.KindFft))
	assert.Equal(t, plugin.NullPlugin, r.DefaultFactory(platform.Host, plugin.KindDnn))
	assert.False(t, blas.Factories(r).HasFactory(platform.CUDA, BlasId))
	name, _ := r.Name(FftId)
	assert.Equal(t, FftName, name)

	err := Register(r)
	assert.True(t, errors.Is(err, plugin.ErrAlreadyRegistered))
}

func TestBlas(t *testing.T) {
	support, err := newHostExecutor(t).AsBlas()
	require.NoError(t, err)

	dot, err := support.Dot([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.InDelta(t, 32.0, dot, 1e-12)
	_, err = support.Dot([]float64{1}, []float64{1, 2})
	assert.Error(t, err)
	dot, err = support.Dot(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, dot)

	y := []float64{1, 1, 1}
	require.NoError(t, support.Axpy(2, []float64{1, 2, 3}, y))
	assert.InDeltaSlice(t, []float64{3, 5, 7}, y, 1e-12)
	assert.Error(t, support.Axpy(2, []float64{1, 2}, y))

	// [1 2 3; 4 5 6] x [7 8; 9 10; 11 12]
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{7, 8, 9, 10, 11, 12}
	want := []float64{58, 64, 139, 154}
	c := make([]float64, 4)
	require.NoError(t, support.Gemm(false, false, 2, 2, 3, 1, a, b, 0, c))
	assert.InDeltaSlice(t, want, c, 1e-9)

	// Same product with a given transposed, and accumulating into c.
	aT := []float64{1, 4, 2, 5, 3, 6}
	c = []float64{1, 1, 1, 1}
	require.NoError(t, support.Gemm(true, false, 2, 2, 3, 1, aT, b, 1, c))
	assert.InDeltaSlice(t, []float64{59, 65, 140, 155}, c, 1e-9)

	// b transposed and alpha=2.
	bT := []float64{7, 9, 11, 8, 10, 12}
	c = make([]float64, 4)
	require.NoError(t, support.Gemm(false, true, 2, 2, 3, 2, a, bT, 0, c))
	assert.InDeltaSlice(t, []float64{116, 128, 278, 308}, c, 1e-9)

	assert.Error(t, support.Gemm(false, false, 2, 2, 3, 1, a[:5], b, 0, c))
	assert.Error(t, support.Gemm(false, false, -1, 2, 3, 1, a, b, 0, c))

	// Zero dimensions: nothing to compute when c is empty, and c = beta*c when k is 0.
	require.NoError(t, support.Gemm(false, false, 0, 2, 3, 1, nil, b, 0, nil))
	require.NoError(t, support.Gemm(true, true, 2, 0, 3, 1, aT, nil, 0, nil))
	c = []float64{1, 2, 3, 4}
	require.NoError(t, support.Gemm(false, false, 2, 2, 0, 1, nil, nil, 3, c))
	assert.InDeltaSlice(t, []float64{3, 6, 9, 12}, c, 1e-12)
	require.NoError(t, support.Gemm(false, false, 2, 2, 0, 1, nil, nil, 0, c))
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0}, c, 1e-12)
	assert.Error(t, support.Gemm(false, false, 2, 2, 0, 1, nil, nil, 0, c[:3]))
}

func TestFft(t *testing.T) {
	support, err := newHostExecutor(t).AsFft()
	require.NoError(t, err)

	// The transform of a constant is concentrated in the first coefficient.
	coeff, err := support.ForwardReal([]float64{1, 1, 1, 1})
	require.NoError(t, err)
	require.Len(t, coeff, 3)
	assert.InDelta(t, 4.0, real(coeff[0]), 1e-9)
	assert.InDelta(t, 0.0, cmplx.Abs(coeff[1]), 1e-9)
	assert.InDelta(t, 0.0, cmplx.Abs(coeff[2]), 1e-9)

	// The transform of an impulse is flat.
	cc, err := support.Forward([]complex128{1, 0, 0, 0, 0})
	require.NoError(t, err)
	require.Len(t, cc, 5)
	for _, c := range cc {
		assert.InDelta(t, 1.0, cmplx.Abs(c), 1e-9)
	}

	// Inverse transforms of flat coefficients are impulses, up to a scale factor.
	seq, err := support.Inverse(cc)
	require.NoError(t, err)
	require.Len(t, seq, 5)
	assert.Greater(t, cmplx.Abs(seq[0]), 0.5)
	for _, s := range seq[1:] {
		assert.InDelta(t, 0.0, cmplx.Abs(s), 1e-9)
	}
	realSeq, err := support.InverseReal(coeff, 4)
	require.NoError(t, err)
	require.Len(t, realSeq, 4)
	for _, s := range realSeq[1:] {
		assert.InDelta(t, realSeq[0], s, 1e-9)
	}

	_, err = support.Forward(nil)
	assert.Error(t, err)
	_, err = support.Inverse(nil)
	assert.Error(t, err)
	_, err = support.ForwardReal(nil)
	assert.Error(t, err)
	_, err = support.InverseReal(coeff, 6)
	assert.Error(t, err)
	_, err = support.InverseReal(coeff, 0)
	assert.Error(t, err)
}

func TestNoHostDnn(t *testing.T) {
	_, err := newHostExecutor(t).AsDnn()
	require.Error(t, err)
	assert.True(t, errors.Is(err, plugin.ErrNoSuitablePlugin))
	assert.Contains(t, err.Error(), "DNN-providing plugin")
}
