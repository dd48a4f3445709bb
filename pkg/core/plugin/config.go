// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plugin

import "github.com/pkg/errors"

// Config selects which plugin to use for each Kind. The zero value is not useful, use DefaultConfig.
//
// It is used by executors to decide which factories to instantiate.
type Config struct {
	Blas, Dnn, Fft Id
}

// DefaultConfig selects the platform's Default plugin for every kind.
func DefaultConfig() Config {
	return Config{Blas: Default, Dnn: Default, Fft: Default}
}

// WithBlas returns a copy of the Config with the given BLAS plugin.
func (c Config) WithBlas(id Id) Config {
	c.Blas = id
	return c
}

// WithDnn returns a copy of the Config with the given DNN plugin.
func (c Config) WithDnn(id Id) Config {
	c.Dnn = id
	return c
}

// WithFft returns a copy of the Config with the given FFT plugin.
func (c Config) WithFft(id Id) Config {
	c.Fft = id
	return c
}

// For returns the plugin selected for the kind, or NullPlugin if the kind is invalid.
func (c Config) For(kind Kind) Id {
	switch kind {
	case KindBlas:
		return c.Blas
	case KindDnn:
		return c.Dnn
	case KindFft:
		return c.Fft
	}
	return NullPlugin
}

// Set selects the plugin for the kind.
func (c *Config) Set(kind Kind, id Id) error {
	switch kind {
	case KindBlas:
		c.Blas = id
	case KindDnn:
		c.Dnn = id
	case KindFft:
		c.Fft = id
	default:
		return invalidKindError(kind)
	}
	return nil
}
