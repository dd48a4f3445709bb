// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// PlatformDirectory is used by the Registry to resolve platform names for diagnostics.
// *platform.Directory implements it.
type PlatformDirectory interface {
	PlatformWithId(id platform.Id) (platform.Platform, error)
}

// unregisteredPlatformName is used in diagnostics when a platform id can't be resolved.
const unregisteredPlatformName = "<unregistered platform>"

// PluginFactories holds the factories of one scope (one platform, or all platforms), one map per Kind.
type PluginFactories struct {
	Blas, Dnn, Fft map[Id]any
}

func newPluginFactories() *PluginFactories {
	return &PluginFactories{
		Blas: make(map[Id]any),
		Dnn:  make(map[Id]any),
		Fft:  make(map[Id]any),
	}
}

// forKind returns the map for kind, or nil if kind is not valid.
func (f *PluginFactories) forKind(kind Kind) map[Id]any {
	switch kind {
	case KindBlas:
		return f.Blas
	case KindDnn:
		return f.Dnn
	case KindFft:
		return f.Fft
	default:
		return nil
	}
}

// lookup is nil-safe: a platform without factories has none.
func (f *PluginFactories) lookup(kind Kind, id Id) (factory any, found bool) {
	if f == nil {
		return nil, false
	}
	factory, found = f.forKind(kind)[id]
	return
}

// DefaultFactories holds the default plugin of one platform, per Kind. Unset values are NullPlugin.
type DefaultFactories struct {
	Blas, Dnn, Fft Id
}

func newDefaultFactories() *DefaultFactories {
	return &DefaultFactories{Blas: NullPlugin, Dnn: NullPlugin, Fft: NullPlugin}
}

// get is nil-safe and returns NullPlugin for a platform without defaults, or for an invalid kind.
func (d *DefaultFactories) get(kind Kind) Id {
	if d == nil {
		return NullPlugin
	}
	switch kind {
	case KindBlas:
		return d.Blas
	case KindDnn:
		return d.Dnn
	case KindFft:
		return d.Fft
	default:
		return NullPlugin
	}
}

func (d *DefaultFactories) set(kind Kind, id Id) {
	switch kind {
	case KindBlas:
		d.Blas = id
	case KindDnn:
		d.Dnn = id
	case KindFft:
		d.Fft = id
	}
}

// Registry of plugin factories.
//
// All its state (factories of every platform, generic factories, defaults and names) is guarded by
// a single RWMutex: registrations take it exclusively, lookups take it shared. So lookups can run
// concurrently with registrations, and always observe either the state before or after it.
//
// Maps only grow: there is no way to unregister a plugin.
type Registry struct {
	directory PlatformDirectory

	mu        sync.RWMutex
	factories map[platform.Id]*PluginFactories
	generic   *PluginFactories
	defaults  map[platform.Id]*DefaultFactories
	names     map[Id]string
}

// New creates an empty Registry. The directory is used only to pretty-print platform names in
// diagnostics, and it may be nil.
func New(directory PlatformDirectory) *Registry {
	return &Registry{
		directory: directory,
		factories: make(map[platform.Id]*PluginFactories),
		generic:   newPluginFactories(),
		defaults:  make(map[platform.Id]*DefaultFactories),
		names:     make(map[Id]string),
	}
}

var (
	instance     *Registry
	instanceOnce sync.Once
)

// Instance returns the process-wide Registry, created on first use with platform.DefaultDirectory().
//
// Prefer creating a Registry with New during the program's startup and passing it along.
// Instance exists for backends that register themselves during package initialization.
func Instance() *Registry {
	instanceOnce.Do(func() {
		instance = New(platform.DefaultDirectory())
	})
	return instance
}

// platformName returns the display name of the platform, for diagnostics.
// It must not be called with the lock held, since it calls the directory.
func (r *Registry) platformName(platformId platform.Id) string {
	if r.directory == nil {
		return unregisteredPlatformName
	}
	p, err := r.directory.PlatformWithId(platformId)
	if err != nil || p == nil {
		return unregisteredPlatformName
	}
	return p.Name()
}

// invalidKindError logs and returns an ErrInvalidKind.
func invalidKindError(kind Kind) error {
	klog.Errorf("Invalid plugin kind specified: %s", kind)
	return errors.Wrapf(ErrInvalidKind, "kind %s", kind)
}

func validateRegistration(kind Kind, id Id, name string, factory any) error {
	if !kind.IsValid() {
		return invalidKindError(kind)
	}
	if id.isReserved() {
		return errors.Wrapf(ErrInvalidPluginId, "cannot register %s plugin %q with id %s", kind, name, id)
	}
	if isNilFactory(factory) {
		return errors.Wrapf(ErrNilFactory, "%s plugin %q", kind, name)
	}
	return nil
}

// isNilFactory also catches typed nils, e.g. a nil func boxed by Table.Register.
func isNilFactory(factory any) bool {
	if factory == nil {
		return true
	}
	v := reflect.ValueOf(factory)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// insertLocked adds the factory to factories and names the plugin. It must be called with r.mu locked.
// It returns a message to be logged after the lock is released, if the plugin was already named differently.
func (r *Registry) insertLocked(factories *PluginFactories, kind Kind, id Id, name string, factory any) (
	nameConflict string, err error) {
	table := factories.forKind(kind)
	if _, found := table[id]; found {
		return "", errors.Wrapf(ErrAlreadyRegistered, "attempting to register factory for %s plugin %q when one "+
			"has already been registered", kind, name)
	}
	table[id] = factory
	if previous, found := r.names[id]; !found {
		r.names[id] = name
	} else if previous != name {
		nameConflict = fmt.Sprintf("plugin %s is already named %q, ignoring new name %q given for %s",
			id, previous, name, kind)
	}
	return
}

// RegisterFactory registers factory as the implementation of the plugin (kind, id) for the given platform.
//
// The name is used for diagnostics, and is shared across platforms and kinds: the first name given to an id is kept.
//
// It returns an error wrapping ErrAlreadyRegistered if the platform already has a factory for (kind, id),
// in which case nothing is changed.
func (r *Registry) RegisterFactory(platformId platform.Id, kind Kind, id Id, name string, factory any) error {
	if err := validateRegistration(kind, id, name, factory); err != nil {
		return err
	}
	nameConflict, err := func() (string, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		factories, found := r.factories[platformId]
		if !found {
			factories = newPluginFactories()
		}
		nameConflict, err := r.insertLocked(factories, kind, id, name, factory)
		if err != nil {
			return "", err
		}
		if !found {
			r.factories[platformId] = factories
		}
		return nameConflict, nil
	}()
	if err != nil {
		return errors.WithMessagef(err, "platform %s", r.platformName(platformId))
	}
	if nameConflict != "" {
		klog.V(1).Info(nameConflict)
	}
	klog.V(1).Infof("Registered %s plugin %q (%s) for platform %s", kind, name, id, r.platformName(platformId))
	return nil
}

// RegisterFactoryForAllPlatforms registers factory as the implementation of the plugin (kind, id) for every
// platform that doesn't register its own factory for the same (kind, id).
//
// It returns an error wrapping ErrAlreadyRegistered if (kind, id) already has a generic factory.
func (r *Registry) RegisterFactoryForAllPlatforms(kind Kind, id Id, name string, factory any) error {
	if err := validateRegistration(kind, id, name, factory); err != nil {
		return err
	}
	nameConflict, err := func() (string, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.insertLocked(r.generic, kind, id, name, factory)
	}()
	if err != nil {
		return errors.WithMessage(err, "all platforms")
	}
	if nameConflict != "" {
		klog.V(1).Info(nameConflict)
	}
	klog.V(1).Infof("Registered %s plugin %q (%s) for all platforms", kind, name, id)
	return nil
}

// lookupLocked resolves (kind, id) for the platform: platform-specific factories first, then generic ones.
// It must be called with r.mu (at least read) locked.
func (r *Registry) lookupLocked(platformId platform.Id, kind Kind, id Id) (factory any, found bool) {
	factory, found = r.factories[platformId].lookup(kind, id)
	if !found {
		factory, found = r.generic.lookup(kind, id)
	}
	return
}

// HasFactory returns whether (kind, id) resolves to a factory for the platform, either one registered for the
// platform or one registered for all platforms.
//
// An invalid kind is logged as an error, and reported as not found.
func (r *Registry) HasFactory(platformId platform.Id, kind Kind, id Id) bool {
	if !kind.IsValid() {
		_ = invalidKindError(kind)
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, found := r.lookupLocked(platformId, kind, id)
	return found
}

// SetDefaultFactory sets id as the default plugin of the given kind for the platform.
//
// The (platform, kind, id) must already resolve to a factory (see HasFactory), otherwise a diagnostic is logged
// and an error wrapping ErrPreconditionUnmet is returned, and nothing is changed.
// An invalid kind returns an error wrapping ErrInvalidKind instead.
func (r *Registry) SetDefaultFactory(platformId platform.Id, kind Kind, id Id) error {
	if !kind.IsValid() {
		return invalidKindError(kind)
	}
	r.mu.Lock()
	_, found := r.lookupLocked(platformId, kind, id)
	if found {
		defaults := r.defaults[platformId]
		if defaults == nil {
			defaults = newDefaultFactories()
			r.defaults[platformId] = defaults
		}
		defaults.set(kind, id)
	}
	r.mu.Unlock()

	platformName := r.platformName(platformId)
	if !found {
		klog.Errorf("A factory must be registered for a platform before being set as default! "+
			"Platform name: %s, PluginKind: %s, PluginId: %s", platformName, kind, id)
		return errors.Wrapf(ErrPreconditionUnmet, "platform %s, kind %s, plugin id %s", platformName, kind, id)
	}
	klog.V(1).Infof("Default %s plugin for platform %s set to %s", kind, platformName, id)
	return nil
}

// MustSetDefaultFactory calls SetDefaultFactory and panics if it fails.
func (r *Registry) MustSetDefaultFactory(platformId platform.Id, kind Kind, id Id) {
	if err := r.SetDefaultFactory(platformId, kind, id); err != nil {
		exceptions.Panicf("%+v", err)
	}
}

// DefaultFactory returns the default plugin of the given kind for the platform, or NullPlugin if none was set.
func (r *Registry) DefaultFactory(platformId platform.Id, kind Kind) Id {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults[platformId].get(kind)
}

// GetFactory returns the factory of the plugin (kind, id) for the platform.
//
// If id is Default, it is first replaced by the platform's default for the kind -- if none was set it returns an
// error wrapping ErrNoSuitablePlugin. Defaults are never taken from another platform.
//
// The id is then resolved with the platform's own factories first, and then with the factories registered for all
// platforms. If neither has it, it returns an error wrapping ErrNotFound.
//
// Usually one will use the typed version Table.GetFactory instead.
func (r *Registry) GetFactory(platformId platform.Id, kind Kind, id Id) (any, error) {
	if !kind.IsValid() {
		return nil, invalidKindError(kind)
	}
	r.mu.RLock()
	isDefault := id == Default
	if isDefault {
		id = r.defaults[platformId].get(kind)
	}
	var (
		factory any
		found   bool
	)
	if id != NullPlugin {
		factory, found = r.lookupLocked(platformId, kind, id)
	}
	name := r.names[id]
	r.mu.RUnlock()

	if isDefault {
		if id == NullPlugin {
			return nil, errors.Wrapf(ErrNoSuitablePlugin, "no suitable %s plugin registered for platform %s, "+
				"have you linked in a %s-providing plugin?", kind, r.platformName(platformId), kind)
		}
		klog.V(2).Infof("Selecting default %s plugin, %s", kind, name)
	}
	if !found {
		return nil, errors.Wrapf(ErrNotFound, "%s plugin id %s not registered for platform %s",
			kind, id, r.platformName(platformId))
	}
	return factory, nil
}

// Name returns the name of the plugin, and whether it was registered at all.
func (r *Registry) Name(id Id) (name string, found bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, found = r.names[id]
	return
}

// LookupName returns the id of the plugin registered with the given name.
//
// It returns an error wrapping ErrUnknownPluginName if there is none, or ErrAmbiguousPluginName if more than one
// plugin was registered under the name.
func (r *Registry) LookupName(name string) (Id, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := NullPlugin
	for id, idName := range r.names {
		if idName != name {
			continue
		}
		if result != NullPlugin {
			return NullPlugin, errors.Wrapf(ErrAmbiguousPluginName, "%q", name)
		}
		result = id
	}
	if result == NullPlugin {
		return NullPlugin, errors.Wrapf(ErrUnknownPluginName, "%q", name)
	}
	return result, nil
}

// Entry describes one registration, see Registry.Entries.
type Entry struct {
	// Platform for which the factory was registered. It is the zero Id if Generic is true.
	Platform platform.Id

	// Generic is true if the factory was registered for all platforms.
	Generic bool

	Kind Kind
	Id   Id
	Name string

	// IsDefault is true if this entry is the platform's default for the Kind.
	// It is always false for generic entries, even if their Id is selected as default by some platform.
	IsDefault bool
}

// Entries returns a snapshot of all registrations, sorted by scope (platform-specific entries first, by platform id),
// kind and name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	var entries []Entry
	collect := func(platformId platform.Id, generic bool, factories *PluginFactories) {
		for _, kind := range KindValues() {
			if !kind.IsValid() {
				continue
			}
			for id := range factories.forKind(kind) {
				entries = append(entries, Entry{
					Platform:  platformId,
					Generic:   generic,
					Kind:      kind,
					Id:        id,
					Name:      r.names[id],
					IsDefault: !generic && r.defaults[platformId].get(kind) == id,
				})
			}
		}
	}
	for platformId, factories := range r.factories {
		collect(platformId, false, factories)
	}
	collect(platform.Id{}, true, r.generic)
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Generic != b.Generic {
			if a.Generic {
				return 1
			}
			return -1
		}
		if c := strings.Compare(a.Platform.String(), b.Platform.String()); c != 0 {
			return c
		}
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Id.String(), b.Id.String())
	})
	return entries
}
