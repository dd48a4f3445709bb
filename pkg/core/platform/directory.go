// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package platform

import (
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrPlatformNotFound is returned when looking up a platform that was never registered.
	ErrPlatformNotFound = errors.New("platform not found")

	// ErrPlatformAlreadyRegistered is returned when registering a platform whose id or name is taken.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")
)

// Directory maps platform ids and names to Platform objects. It is safe for concurrent use.
type Directory struct {
	mu     sync.RWMutex
	byId   map[Id]Platform
	byName map[string]Platform // Keyed by lower-cased name.
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{
		byId:   make(map[Id]Platform),
		byName: make(map[string]Platform),
	}
}

var (
	defaultDirectory     *Directory
	defaultDirectoryOnce sync.Once
)

// DefaultDirectory returns the process-wide Directory, created on first use with the Host platform
// already registered.
//
// Accelerator platforms are added by whoever discovers them, see DiscoverPJRT for instance.
func DefaultDirectory() *Directory {
	defaultDirectoryOnce.Do(func() {
		defaultDirectory = NewDirectory()
		_ = defaultDirectory.Register(&Descriptor{PlatformId: Host, DisplayName: "Host", NumDevices: 1})
	})
	return defaultDirectory
}

// Register adds the platform to the directory.
//
// It returns ErrPlatformAlreadyRegistered if either its id or its name (case-insensitive) is already
// in use.
func (d *Directory) Register(p Platform) error {
	if p == nil || p.Id().IsZero() || p.Name() == "" {
		return errors.New("platform must have a non-zero id and a name")
	}
	key := strings.ToLower(p.Name())

	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, found := d.byId[p.Id()]; found {
		return errors.Wrapf(ErrPlatformAlreadyRegistered, "id %s is used by platform %q", p.Id(), existing.Name())
	}
	if _, found := d.byName[key]; found {
		return errors.Wrapf(ErrPlatformAlreadyRegistered, "name %q", p.Name())
	}
	d.byId[p.Id()] = p
	d.byName[key] = p
	return nil
}

// PlatformWithId returns the platform registered with the given id.
func (d *Directory) PlatformWithId(id Id) (Platform, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, found := d.byId[id]
	if !found {
		return nil, errors.Wrapf(ErrPlatformNotFound, "platform id %s", id)
	}
	return p, nil
}

// PlatformWithName returns the platform registered with the given name. The lookup is case-insensitive.
func (d *Directory) PlatformWithName(name string) (Platform, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, found := d.byName[strings.ToLower(name)]
	if !found {
		return nil, errors.Wrapf(ErrPlatformNotFound, "platform name %q", name)
	}
	return p, nil
}

// Platforms returns all registered platforms sorted by name.
func (d *Directory) Platforms() []Platform {
	d.mu.RLock()
	platforms := make([]Platform, 0, len(d.byId))
	for _, p := range d.byId {
		platforms = append(platforms, p)
	}
	d.mu.RUnlock()
	slices.SortFunc(platforms, func(a, b Platform) int {
		return strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name()))
	})
	return platforms
}
