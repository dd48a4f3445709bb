// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type otherFactory func() int

func TestTable(t *testing.T) {
	r := newTestRegistry(t)
	blasTable := NewTable[testFactory](r, KindBlas)
	assert.Equal(t, KindBlas, blasTable.Kind())
	assert.Same(t, r, blasTable.Registry())

	id := NewId()
	require.NoError(t, blasTable.Register(p1, id, "blas", makeFactory("p1")))
	require.NoError(t, blasTable.RegisterForAllPlatforms(id, "blas", makeFactory("generic")))
	require.NoError(t, blasTable.SetDefault(p1, id))
	assert.True(t, blasTable.HasFactory(p2, id))

	factory, err := blasTable.GetFactory(p1, Default)
	require.NoError(t, err)
	assert.Equal(t, "p1", factory())
	factory, err = blasTable.GetFactory(p2, id)
	require.NoError(t, err)
	assert.Equal(t, "generic", factory())

	// Lookups go through the same registry: the DNN table doesn't see BLAS factories.
	dnnTable := NewTable[testFactory](r, KindDnn)
	assert.False(t, dnnTable.HasFactory(p1, id))
	_, err = dnnTable.GetFactory(p1, id)
	assert.True(t, errors.Is(err, ErrNotFound))

	// A mismatching factory type is an error, not a panic.
	wrongTable := NewTable[otherFactory](r, KindBlas)
	_, err = wrongTable.GetFactory(p1, id)
	assert.True(t, errors.Is(err, ErrWrongFactoryType))
}

func TestTableMustRegister(t *testing.T) {
	r := newTestRegistry(t)
	fftTable := NewTable[testFactory](r, KindFft)
	id := NewId()
	require.NotPanics(t, func() { fftTable.MustRegister(p1, id, "fft", makeFactory("fft")) })
	err := exceptions.TryCatch[error](func() { fftTable.MustRegister(p1, id, "fft", makeFactory("fft")) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	require.NotPanics(t, func() { fftTable.MustRegisterForAllPlatforms(id, "fft", makeFactory("generic")) })
	err = exceptions.TryCatch[error](func() { fftTable.MustRegisterForAllPlatforms(id, "fft", makeFactory("generic")) })
	require.Error(t, err)
}

func TestTableRejectsNilFactory(t *testing.T) {
	r := newTestRegistry(t)
	blasTable := NewTable[testFactory](r, KindBlas)
	id := NewId()
	var nilFactory testFactory
	err := blasTable.Register(p1, id, "nil-blas", nilFactory)
	assert.True(t, errors.Is(err, ErrNilFactory), "got %v", err)
	err = blasTable.RegisterForAllPlatforms(id, "nil-blas", nil)
	assert.True(t, errors.Is(err, ErrNilFactory), "got %v", err)
	err = r.RegisterFactory(p1, KindBlas, id, "nil-blas", nilFactory)
	assert.True(t, errors.Is(err, ErrNilFactory), "got %v", err)

	// Nothing was registered, not even the name.
	assert.False(t, blasTable.HasFactory(p1, id))
	_, found := r.Name(id)
	assert.False(t, found)
	assert.Empty(t, r.Entries())
}
