// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package platform defines the hardware platforms (host, CUDA, ROCm, TPU, ...) that acceleration
// plugins can be registered for, and a Directory mapping a platform Id to its description.
//
// Platform ids are opaque keys: the plugin registry never interprets them, it only uses the Directory
// to pretty-print a platform name in diagnostics.
package platform

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Id identifies a hardware platform. It is comparable and can be used as a map key.
//
// Well-known platforms have fixed ids (see Host, CUDA, ROCm and TPU), derived from their names with IdFor.
type Id uuid.UUID

// idNamespace is the UUID namespace used to derive platform ids from names.
var idNamespace = uuid.MustParse("6f3c9a52-8d1e-4b7a-9c0f-2e5d7a4b1c93")

// IdFor returns the Id for the platform with the given name. Names are case-insensitive.
func IdFor(name string) Id {
	return Id(uuid.NewSHA1(idNamespace, []byte(strings.ToLower(name))))
}

// String implements fmt.Stringer.
func (id Id) String() string {
	return uuid.UUID(id).String()
}

// IsZero returns whether the id is the zero value, which never identifies a platform.
func (id Id) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

var (
	// Host is the CPU the process runs on.
	Host = IdFor("host")

	// CUDA is the NVIDIA GPU platform.
	CUDA = IdFor("cuda")

	// ROCm is the AMD GPU platform.
	ROCm = IdFor("rocm")

	// TPU is the Google TPU platform.
	TPU = IdFor("tpu")
)

// Platform describes a hardware platform.
type Platform interface {
	// Id returns the platform's unique identifier.
	Id() Id

	// Name returns a human-readable name, e.g. "Host" or "CUDA".
	Name() string

	// VisibleDeviceCount returns the number of devices of this platform visible to the process.
	// It returns 0 if unknown.
	VisibleDeviceCount() int
}

// Descriptor is a static Platform implementation.
type Descriptor struct {
	PlatformId  Id
	DisplayName string
	NumDevices  int
}

// New returns a Descriptor for the platform with the given name, using IdFor(name) as its id.
func New(name string, numDevices int) *Descriptor {
	return &Descriptor{
		PlatformId:  IdFor(name),
		DisplayName: name,
		NumDevices:  numDevices,
	}
}

// Id implements Platform.
func (d *Descriptor) Id() Id { return d.PlatformId }

// Name implements Platform.
func (d *Descriptor) Name() string { return d.DisplayName }

// VisibleDeviceCount implements Platform.
func (d *Descriptor) VisibleDeviceCount() int { return d.NumDevices }

// String implements fmt.Stringer.
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s (%d devices)", d.DisplayName, d.NumDevices)
}
