// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

//go:build pjrt

package main

import "github.com/gomlx/accelreg/pkg/core/platform"

// With the "pjrt" build tag, platforms are discovered from the installed PJRT plugins.
func init() {
	discoverPlatforms = platform.DiscoverPJRT
}
