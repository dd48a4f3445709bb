// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"maps"
	"os"
	"slices"

	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/gomlx/accelreg/pkg/support/fsutil"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// DefaultsEnv is the environment variable with the path to a defaults file, see Defaults.
// If set, it takes precedence over DefaultsFile.
const DefaultsEnv = "ACCELREG_DEFAULTS"

// DefaultsFile is the path to a defaults file used by ApplyDefaultsFromEnv if DefaultsEnv is not set.
var DefaultsFile string

// Defaults selects default plugins by name. It is read from YAML files like:
//
//	defaults:
//	  host:
//	    blas: gonum-blas
//	    fft: gonum-fft
//	  cuda:
//	    blas: cublas
//
// Platform names are resolved with a platform directory, kinds are case-insensitive ("blas", "dnn", "fft"), and plugin
// names are resolved with Registry.LookupName.
type Defaults struct {
	Platforms map[string]map[string]string `yaml:"defaults"`
}

// PlatformNameDirectory resolves platforms by name. *platform.Directory implements it.
type PlatformNameDirectory interface {
	PlatformWithName(name string) (platform.Platform, error)
}

// ParseDefaults parses the YAML contents of a defaults file.
func ParseDefaults(contents []byte) (*Defaults, error) {
	defaults := &Defaults{}
	if err := yaml.Unmarshal(contents, defaults); err != nil {
		return nil, errors.Wrap(err, "parsing plugin defaults")
	}
	return defaults, nil
}

// LoadDefaultsFile reads and parses the defaults file in path. A leading "~" in path is expanded to the
// home directory.
func LoadDefaultsFile(path string) (*Defaults, error) {
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading plugin defaults file %q", path)
	}
	defaults, err := ParseDefaults(contents)
	if err != nil {
		return nil, errors.WithMessagef(err, "file %q", path)
	}
	return defaults, nil
}

// Apply sets the selected defaults in the registry, in a deterministic order (sorted by platform and kind).
// It stops at the first error.
func (d *Defaults) Apply(r *Registry, dir PlatformNameDirectory) error {
	for _, platformName := range slices.Sorted(maps.Keys(d.Platforms)) {
		p, err := dir.PlatformWithName(platformName)
		if err != nil {
			return errors.WithMessage(err, "applying plugin defaults")
		}
		selections := d.Platforms[platformName]
		for _, kindName := range slices.Sorted(maps.Keys(selections)) {
			kind, err := KindString(kindName)
			if err != nil || !kind.IsValid() {
				return errors.Wrapf(ErrInvalidKind, "applying plugin defaults for platform %q: kind %q",
					platformName, kindName)
			}
			pluginName := selections[kindName]
			id, err := r.LookupName(pluginName)
			if err != nil {
				return errors.WithMessagef(err, "applying plugin defaults for platform %q, kind %s",
					platformName, kind)
			}
			if err = r.SetDefaultFactory(p.Id(), kind, id); err != nil {
				return errors.WithMessagef(err, "applying plugin defaults for platform %q, plugin %q",
					platformName, pluginName)
			}
		}
	}
	return nil
}

// ApplyDefaultsFromEnv loads the defaults file given by the DefaultsEnv environment variable, or by DefaultsFile
// if the variable is not set, and applies it to the registry.
// If neither is set, it does nothing.
func ApplyDefaultsFromEnv(r *Registry, dir PlatformNameDirectory) error {
	path, found := os.LookupEnv(DefaultsEnv)
	if !found {
		path = DefaultsFile
	}
	if path == "" {
		return nil
	}
	defaults, err := LoadDefaultsFile(path)
	if err != nil {
		return err
	}
	klog.V(1).Infof("Applying plugin defaults from %q", path)
	return defaults.Apply(r, dir)
}
