// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plugin

import "github.com/pkg/errors"

// Errors returned by the Registry. They are always wrapped with details, test for them with errors.Is.
var (
	// ErrAlreadyRegistered is returned when registering a (kind, id) that already has a factory in the same scope
	// (the same platform, or all platforms).
	ErrAlreadyRegistered = errors.New("factory for plugin already registered")

	// ErrPreconditionUnmet is returned when setting as default a plugin that has no registered factory.
	ErrPreconditionUnmet = errors.New("a factory must be registered for a platform before being set as default")

	// ErrInvalidKind is returned when a Kind value other than KindBlas, KindDnn or KindFft is used.
	// It indicates a bug in the caller.
	ErrInvalidKind = errors.New("invalid plugin kind")

	// ErrNoSuitablePlugin is returned when looking up the Default plugin of a platform that has none configured.
	ErrNoSuitablePlugin = errors.New("no suitable plugin")

	// ErrNotFound is returned when looking up a plugin id that is not registered, neither for the platform nor
	// for all platforms.
	ErrNotFound = errors.New("plugin id not registered")

	// ErrInvalidPluginId is returned when trying to register NullPlugin or Default.
	ErrInvalidPluginId = errors.New("invalid plugin id")

	// ErrNilFactory is returned when trying to register a nil factory.
	ErrNilFactory = errors.New("nil factory")

	// ErrWrongFactoryType is returned by a Table when the stored factory is not of the table's type.
	ErrWrongFactoryType = errors.New("wrong factory type")

	// ErrUnknownPluginName is returned by Registry.LookupName if no plugin has the given name.
	ErrUnknownPluginName = errors.New("unknown plugin name")

	// ErrAmbiguousPluginName is returned by Registry.LookupName if more than one plugin has the given name.
	ErrAmbiguousPluginName = errors.New("ambiguous plugin name")
)
