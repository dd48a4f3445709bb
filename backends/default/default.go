// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package _default includes the default backends, namely the host (gonum) plugins.
//
// To use it simply include:
//
//	import _ "github.com/gomlx/accelreg/backends/default"
//
// Accelerator backends (CUDA, ROCm, TPU) are built separately and register themselves the same way.
package _default

import (
	_ "github.com/gomlx/accelreg/backends/host"
)
