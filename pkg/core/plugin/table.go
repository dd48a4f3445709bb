// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Table is a typed view of the Registry for one Kind, whose factories are of type F.
//
// Each capability package (blas, dnn, fft) defines its factory type and returns a Table for it, so
// producers and consumers never handle untyped factories.
type Table[F any] struct {
	registry *Registry
	kind     Kind
}

// NewTable returns the view of registry for the given kind, with factories of type F.
func NewTable[F any](registry *Registry, kind Kind) Table[F] {
	return Table[F]{registry: registry, kind: kind}
}

// Kind of the plugins in the table.
func (t Table[F]) Kind() Kind { return t.kind }

// Registry backing the table.
func (t Table[F]) Registry() *Registry { return t.registry }

// Register the factory for the plugin id on the given platform. See Registry.RegisterFactory.
func (t Table[F]) Register(platformId platform.Id, id Id, name string, factory F) error {
	return t.registry.RegisterFactory(platformId, t.kind, id, name, factory)
}

// RegisterForAllPlatforms registers the factory for the plugin id on every platform.
// See Registry.RegisterFactoryForAllPlatforms.
func (t Table[F]) RegisterForAllPlatforms(id Id, name string, factory F) error {
	return t.registry.RegisterFactoryForAllPlatforms(t.kind, id, name, factory)
}

// MustRegister calls Register and panics on error. Convenient for init() functions.
func (t Table[F]) MustRegister(platformId platform.Id, id Id, name string, factory F) {
	if err := t.Register(platformId, id, name, factory); err != nil {
		exceptions.Panicf("%+v", err)
	}
}

// MustRegisterForAllPlatforms calls RegisterForAllPlatforms and panics on error.
func (t Table[F]) MustRegisterForAllPlatforms(id Id, name string, factory F) {
	if err := t.RegisterForAllPlatforms(id, name, factory); err != nil {
		exceptions.Panicf("%+v", err)
	}
}

// SetDefault sets id as the platform's default for the table's kind. See Registry.SetDefaultFactory.
func (t Table[F]) SetDefault(platformId platform.Id, id Id) error {
	return t.registry.SetDefaultFactory(platformId, t.kind, id)
}

// HasFactory returns whether id resolves to a factory for the platform. See Registry.HasFactory.
func (t Table[F]) HasFactory(platformId platform.Id, id Id) bool {
	return t.registry.HasFactory(platformId, t.kind, id)
}

// GetFactory returns the factory for id (or for the platform's default, if id is Default).
// See Registry.GetFactory.
func (t Table[F]) GetFactory(platformId platform.Id, id Id) (F, error) {
	var zero F
	factory, err := t.registry.GetFactory(platformId, t.kind, id)
	if err != nil {
		return zero, err
	}
	typed, ok := factory.(F)
	if !ok {
		return zero, errors.Wrapf(ErrWrongFactoryType, "%s factory for plugin %s has type %T, wanted %T",
			t.kind, id, factory, zero)
	}
	return typed, nil
}
