// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package host

import (
	"sync"

	"github.com/gomlx/accelreg/pkg/core/fft"
	"github.com/gomlx/accelreg/pkg/core/plugin"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/dsp/fourier"
)

// fftSupport implements fft.Support with gonum's fourier package.
//
// gonum transforms hold work buffers and are not safe for concurrent use, so they are cached per length
// and used under mu.
type fftSupport struct {
	mu         sync.Mutex
	realPlans  map[int]*fourier.FFT
	cmplxPlans map[int]*fourier.CmplxFFT
}

var _ fft.Support = (*fftSupport)(nil)

// newFft is the fft.Factory of the host FFT plugin.
func newFft(_ plugin.Executor) (fft.Support, error) {
	return &fftSupport{
		realPlans:  make(map[int]*fourier.FFT),
		cmplxPlans: make(map[int]*fourier.CmplxFFT),
	}, nil
}

// realPlanLocked must be called with f.mu locked.
func (f *fftSupport) realPlanLocked(n int) *fourier.FFT {
	plan, found := f.realPlans[n]
	if !found {
		plan = fourier.NewFFT(n)
		f.realPlans[n] = plan
	}
	return plan
}

// cmplxPlanLocked must be called with f.mu locked.
func (f *fftSupport) cmplxPlanLocked(n int) *fourier.CmplxFFT {
	plan, found := f.cmplxPlans[n]
	if !found {
		plan = fourier.NewCmplxFFT(n)
		f.cmplxPlans[n] = plan
	}
	return plan
}

// Forward implements fft.Support.
func (f *fftSupport) Forward(seq []complex128) ([]complex128, error) {
	if len(seq) == 0 {
		return nil, errors.New("Forward: empty sequence")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cmplxPlanLocked(len(seq)).Coefficients(nil, seq), nil
}

// Inverse implements fft.Support.
func (f *fftSupport) Inverse(coeff []complex128) ([]complex128, error) {
	if len(coeff) == 0 {
		return nil, errors.New("Inverse: no coefficients")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cmplxPlanLocked(len(coeff)).Sequence(nil, coeff), nil
}

// ForwardReal implements fft.Support.
func (f *fftSupport) ForwardReal(seq []float64) ([]complex128, error) {
	if len(seq) == 0 {
		return nil, errors.New("ForwardReal: empty sequence")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.realPlanLocked(len(seq)).Coefficients(nil, seq), nil
}

// InverseReal implements fft.Support.
func (f *fftSupport) InverseReal(coeff []complex128, n int) ([]float64, error) {
	if n <= 0 {
		return nil, errors.Errorf("InverseReal: sequence length must be positive, got %d", n)
	}
	if len(coeff) != n/2+1 {
		return nil, errors.Errorf("InverseReal: a sequence of length %d needs %d coefficients, got %d",
			n, n/2+1, len(coeff))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.realPlanLocked(n).Sequence(nil, coeff), nil
}
