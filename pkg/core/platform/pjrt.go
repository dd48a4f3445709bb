// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

//go:build pjrt

package platform

import (
	"maps"
	"slices"

	"github.com/gomlx/gopjrt/pjrt"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DiscoverPJRT registers in dir one platform per PJRT plugin installed in the system, and returns the
// platforms that were added.
//
// Plugins are searched by pjrt.AvailablePlugins: in PJRT_PLUGIN_LIBRARY_PATH if set, otherwise in
// "/usr/local/lib/gomlx/pjrt" and the standard library directories.
// The "cpu" plugin maps to the Host platform, which is usually already registered.
//
// Device counts are not probed, since that requires creating a client for each plugin.
func DiscoverPJRT(dir *Directory) ([]Platform, error) {
	available := pjrt.AvailablePlugins()
	var added []Platform
	for _, name := range slices.Sorted(maps.Keys(available)) {
		if name == "cpu" {
			name = "host"
		}
		p := New(name, 0)
		err := dir.Register(p)
		if errors.Is(err, ErrPlatformAlreadyRegistered) {
			klog.V(1).Infof("PJRT plugin %q: platform already registered", name)
			continue
		}
		if err != nil {
			return added, errors.WithMessagef(err, "registering platform for PJRT plugin %q (%s)", name, available[name])
		}
		klog.V(1).Infof("PJRT plugin %q registered as platform %s", name, p.Id())
		added = append(added, p)
	}
	return added, nil
}
