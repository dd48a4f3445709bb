// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package executor binds one device of one platform to the plugins selected for it.
//
// An Executor resolves each capability (BLAS, DNN, FFT) through the plugin registry the first time it is
// requested, instantiates the plugin once, and caches the result -- or the error -- for later requests.
package executor

import (
	"sync"

	"github.com/gomlx/accelreg/pkg/core/blas"
	"github.com/gomlx/accelreg/pkg/core/dnn"
	"github.com/gomlx/accelreg/pkg/core/fft"
	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/gomlx/accelreg/pkg/core/plugin"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrNilSupport is returned when a plugin factory returns neither a Support nor an error.
var ErrNilSupport = errors.New("plugin factory returned nil support")

// lazy holds a capability instantiated at most once.
type lazy[S any] struct {
	once  sync.Once
	value S
	err   error
}

func (l *lazy[S]) get(create func() (S, error)) (S, error) {
	l.once.Do(func() {
		l.value, l.err = create()
	})
	return l.value, l.err
}

// Executor for one device. It implements plugin.Executor, and it is safe for concurrent use.
type Executor struct {
	registry   *plugin.Registry
	platformId platform.Id
	ordinal    int
	config     plugin.Config

	blas lazy[blas.Support]
	dnn  lazy[dnn.Support]
	fft  lazy[fft.Support]
}

var _ plugin.Executor = (*Executor)(nil)

// New creates an Executor for the device ordinal of the platform, using the plugins selected by config.
// See plugin.DefaultConfig.
func New(registry *plugin.Registry, platformId platform.Id, ordinal int, config plugin.Config) *Executor {
	return &Executor{
		registry:   registry,
		platformId: platformId,
		ordinal:    ordinal,
		config:     config,
	}
}

// PlatformId implements plugin.Executor.
func (e *Executor) PlatformId() platform.Id { return e.platformId }

// DeviceOrdinal implements plugin.Executor.
func (e *Executor) DeviceOrdinal() int { return e.ordinal }

// Config returns the plugin selection of the executor.
func (e *Executor) Config() plugin.Config { return e.config }

// instantiate looks up the factory in table for the configured plugin and calls it with the executor.
// A factory that panics or returns a nil Support yields an error, which is cached like any other.
func instantiate[S any, F ~func(plugin.Executor) (S, error)](e *Executor, table plugin.Table[F]) (S, error) {
	var zero S
	id := e.config.For(table.Kind())
	factory, err := table.GetFactory(e.platformId, id)
	if err != nil {
		return zero, errors.WithMessagef(err, "executor for device #%d", e.ordinal)
	}
	var support S
	exception := exceptions.Try(func() { support, err = factory(e) })
	if exception != nil {
		return zero, errors.Errorf("%s factory of plugin %s panicked for device #%d: %v",
			table.Kind(), id, e.ordinal, exception)
	}
	if err != nil {
		return zero, errors.WithMessagef(err, "creating %s support for device #%d", table.Kind(), e.ordinal)
	}
	if any(support) == nil {
		return zero, errors.Wrapf(ErrNilSupport, "%s plugin %s for device #%d", table.Kind(), id, e.ordinal)
	}
	klog.V(1).Infof("Executor for device #%d: %s support created", e.ordinal, table.Kind())
	return support, nil
}

// AsBlas returns the BLAS support for the device, created on first call.
func (e *Executor) AsBlas() (blas.Support, error) {
	return e.blas.get(func() (blas.Support, error) {
		return instantiate(e, blas.Factories(e.registry))
	})
}

// AsDnn returns the DNN support for the device, created on first call.
func (e *Executor) AsDnn() (dnn.Support, error) {
	return e.dnn.get(func() (dnn.Support, error) {
		return instantiate(e, dnn.Factories(e.registry))
	})
}

// AsFft returns the FFT support for the device, created on first call.
func (e *Executor) AsFft() (fft.Support, error) {
	return e.fft.get(func() (fft.Support, error) {
		return instantiate(e, fft.Factories(e.registry))
	})
}
