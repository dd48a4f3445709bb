// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	blasId, fftId := NewId(), NewId()
	config := DefaultConfig().WithBlas(blasId).WithFft(fftId)
	assert.Equal(t, blasId, config.For(KindBlas))
	assert.Equal(t, Default, config.For(KindDnn))
	assert.Equal(t, fftId, config.For(KindFft))
	assert.Equal(t, NullPlugin, config.For(KindInvalid))

	dnnId := NewId()
	require.NoError(t, config.Set(KindDnn, dnnId))
	assert.Equal(t, dnnId, config.Dnn)
	assert.Equal(t, DefaultConfig().WithDnn(dnnId).Dnn, dnnId)
	assert.True(t, errors.Is(config.Set(Kind(7), dnnId), ErrInvalidKind))
}

const testDefaultsYAML = `
defaults:
  P1:
    blas: ref-blas
    FFT: ref-fft
  p2:
    dnn: ref-dnn
`

// newDefaultsRegistry returns a registry and its directory, with plugins matching testDefaultsYAML.
func newDefaultsRegistry(t *testing.T) (*Registry, *platform.Directory, map[string]Id) {
	dir := platform.NewDirectory()
	require.NoError(t, dir.Register(platform.New("p1", 1)))
	require.NoError(t, dir.Register(platform.New("p2", 1)))
	r := New(dir)
	ids := map[string]Id{"ref-blas": NewId(), "ref-fft": NewId(), "ref-dnn": NewId()}
	require.NoError(t, r.RegisterFactory(p1, KindBlas, ids["ref-blas"], "ref-blas", makeFactory("blas")))
	require.NoError(t, r.RegisterFactory(p1, KindFft, ids["ref-fft"], "ref-fft", makeFactory("fft")))
	require.NoError(t, r.RegisterFactoryForAllPlatforms(KindDnn, ids["ref-dnn"], "ref-dnn", makeFactory("dnn")))
	return r, dir, ids
}

func TestDefaults(t *testing.T) {
	r, dir, ids := newDefaultsRegistry(t)
	defaults, err := ParseDefaults([]byte(testDefaultsYAML))
	require.NoError(t, err)
	require.Len(t, defaults.Platforms, 2)
	require.NoError(t, defaults.Apply(r, dir))
	assert.Equal(t, ids["ref-blas"], r.DefaultFactory(p1, KindBlas))
	assert.Equal(t, ids["ref-fft"], r.DefaultFactory(p1, KindFft))
	assert.Equal(t, NullPlugin, r.DefaultFactory(p1, KindDnn))
	assert.Equal(t, ids["ref-dnn"], r.DefaultFactory(p2, KindDnn))
	assert.Equal(t, "dnn", getString(t, r, p2, KindDnn, Default))
}

func TestDefaultsErrors(t *testing.T) {
	r, dir, _ := newDefaultsRegistry(t)
	_, err := ParseDefaults([]byte("defaults: [1, 2"))
	assert.Error(t, err)

	for _, tc := range []struct {
		yaml string
		want error
	}{
		{"defaults: {tpu: {blas: ref-blas}}", platform.ErrPlatformNotFound},
		{"defaults: {p1: {gemm: ref-blas}}", ErrInvalidKind},
		{"defaults: {p1: {invalid: ref-blas}}", ErrInvalidKind},
		{"defaults: {p1: {blas: cublas}}", ErrUnknownPluginName},
		{"defaults: {p2: {blas: ref-blas}}", ErrPreconditionUnmet},
	} {
		defaults, err := ParseDefaults([]byte(tc.yaml))
		require.NoError(t, err, tc.yaml)
		err = defaults.Apply(r, dir)
		assert.Truef(t, errors.Is(err, tc.want), "%s: got %v", tc.yaml, err)
	}
}

func TestApplyDefaultsFromEnv(t *testing.T) {
	r, dir, ids := newDefaultsRegistry(t)

	// Nothing configured.
	t.Setenv(DefaultsEnv, "")
	require.NoError(t, ApplyDefaultsFromEnv(r, dir))
	assert.Equal(t, NullPlugin, r.DefaultFactory(p1, KindBlas))

	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDefaultsYAML), 0o644))
	t.Setenv(DefaultsEnv, path)
	require.NoError(t, ApplyDefaultsFromEnv(r, dir))
	assert.Equal(t, ids["ref-blas"], r.DefaultFactory(p1, KindBlas))

	t.Setenv(DefaultsEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, ApplyDefaultsFromEnv(r, dir))

	_, err := LoadDefaultsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyDefaultsFromPackageVar(t *testing.T) {
	r, dir, ids := newDefaultsRegistry(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "defaults.yaml"), []byte(testDefaultsYAML), 0o644))

	// t.Setenv restores the variable at the end of the test, Unsetenv makes it missing in the meantime.
	t.Setenv(DefaultsEnv, "")
	require.NoError(t, os.Unsetenv(DefaultsEnv))
	previous := DefaultsFile
	t.Cleanup(func() { DefaultsFile = previous })

	DefaultsFile = ""
	require.NoError(t, ApplyDefaultsFromEnv(r, dir))
	assert.Equal(t, NullPlugin, r.DefaultFactory(p1, KindBlas))

	DefaultsFile = "~/defaults.yaml"
	require.NoError(t, ApplyDefaultsFromEnv(r, dir))
	assert.Equal(t, ids["ref-blas"], r.DefaultFactory(p1, KindBlas))
	assert.Equal(t, ids["ref-fft"], r.DefaultFactory(p1, KindFft))
	assert.Equal(t, ids["ref-dnn"], r.DefaultFactory(p2, KindDnn))

	// An empty environment variable takes precedence over DefaultsFile, and disables it.
	r, dir, _ = newDefaultsRegistry(t)
	t.Setenv(DefaultsEnv, "")
	require.NoError(t, ApplyDefaultsFromEnv(r, dir))
	assert.Equal(t, NullPlugin, r.DefaultFactory(p1, KindBlas))
}
