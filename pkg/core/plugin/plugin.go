// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package plugin implements the registry of acceleration plugins: concrete implementations of
// BLAS, DNN and FFT support, registered per hardware platform (or for all platforms) by backend packages,
// and looked up by the rest of the process.
//
// Backends register their factories, typically during initialization:
//
//	var MyBlasId = plugin.NewId()
//
//	func init() {
//		blas.Factories(plugin.Instance()).MustRegister(platform.CUDA, MyBlasId, "my-blas", newMyBlas)
//		plugin.Instance().MustSetDefaultFactory(platform.CUDA, plugin.KindBlas, MyBlasId)
//	}
//
// Consumers look them up either by Id or with the Default sentinel, which resolves to the platform's default:
//
//	factory, err := blas.Factories(plugin.Instance()).GetFactory(platform.CUDA, plugin.Default)
//
// Platform-specific registrations shadow registrations made for all platforms with the same Id.
// Defaults are per platform only: there is no fallback to a "generic default".
package plugin

import (
	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/google/uuid"
)

// Id identifies one concrete plugin implementation. It is comparable and can be used as a map key.
type Id uuid.UUID

var (
	// NullPlugin means "no plugin". It is never a valid key in the registry.
	NullPlugin = Id(uuid.Nil)

	// Default is passed to lookups to mean "the platform's default plugin" for the kind being looked up.
	Default = Id(uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff"))
)

// NewId returns a new process-unique plugin Id.
func NewId() Id {
	return Id(uuid.New())
}

// String implements fmt.Stringer.
func (id Id) String() string {
	switch id {
	case NullPlugin:
		return "<null plugin>"
	case Default:
		return "<default plugin>"
	}
	return uuid.UUID(id).String()
}

// isReserved returns whether the id is one of the sentinels that cannot be registered.
func (id Id) isReserved() bool {
	return id == NullPlugin || id == Default
}

// Kind of capability a plugin provides.
type Kind int

const (
	// KindInvalid is the zero value, used only for error reporting.
	KindInvalid Kind = iota

	// KindBlas is for dense linear algebra plugins.
	KindBlas

	// KindDnn is for neural-network primitives plugins.
	KindDnn

	// KindFft is for fast Fourier transform plugins.
	KindFft
)

//go:generate go tool enumer -type=Kind -trimprefix=Kind -transform=upper -output=gen_kind_enumer.go plugin.go

// IsValid returns whether the kind is one of KindBlas, KindDnn or KindFft.
func (k Kind) IsValid() bool {
	return k >= KindBlas && k <= KindFft
}

// Executor is what plugin factories are instantiated against: one device of one platform.
type Executor interface {
	// PlatformId of the device.
	PlatformId() platform.Id

	// DeviceOrdinal is the index of the device within its platform.
	DeviceOrdinal() int
}
