// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package fsutil has small helpers to resolve user-given file paths.
package fsutil

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ExpandHome replaces a leading "~" or "~user" in path by the corresponding home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	userName, rest, _ := strings.Cut(path[1:], "/")
	var home string
	if userName == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrapf(err, "home directory for %q", path)
		}
		home = dir
	} else {
		u, err := user.Lookup(userName)
		if err != nil {
			return "", errors.Wrapf(err, "home directory of user %q for %q", userName, path)
		}
		home = u.HomeDir
	}
	return filepath.Join(home, rest), nil
}
