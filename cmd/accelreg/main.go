// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// accelreg inspects the acceleration plugins linked into the binary: which platforms are known, which
// BLAS/DNN/FFT plugins are registered for them, and which plugin a lookup resolves to.
//
// Usage:
//
//	accelreg list [--json]
//	accelreg resolve --platform=host --kind=blas [--plugin=gonum-blas]
//
// Plugin defaults can be overridden with a YAML file given by --defaults or by the ACCELREG_DEFAULTS
// environment variable.
package main

import (
	"flag"
	"os"

	_ "github.com/gomlx/accelreg/backends/default"
	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/gomlx/accelreg/pkg/core/plugin"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// discoverPlatforms, if set, registers the platforms found in the system. See pjrt.go.
var discoverPlatforms func(dir *platform.Directory) ([]platform.Platform, error)

func main() {
	klog.InitFlags(nil)
	dir := platform.DefaultDirectory()
	if discoverPlatforms != nil {
		found := must.M1(discoverPlatforms(dir))
		klog.V(1).Infof("%d platforms discovered", len(found))
	}
	if err := newRootCmd(plugin.Instance(), dir).Execute(); err != nil {
		klog.Errorf("%v", err)
		os.Exit(1)
	}
}

// newRootCmd creates the command line for the given registry and platform directory.
func newRootCmd(r *plugin.Registry, dir *platform.Directory) *cobra.Command {
	var defaultsPath string
	root := &cobra.Command{
		Use:           "accelreg",
		Short:         "Inspect the registered acceleration plugins (BLAS, DNN, FFT)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if defaultsPath == "" {
				return plugin.ApplyDefaultsFromEnv(r, dir)
			}
			defaults, err := plugin.LoadDefaultsFile(defaultsPath)
			if err != nil {
				return err
			}
			return errors.WithMessagef(defaults.Apply(r, dir), "--defaults=%s", defaultsPath)
		},
	}
	root.PersistentFlags().StringVar(&defaultsPath, "defaults", "",
		"YAML file with the default plugins per platform. Overrides $"+plugin.DefaultsEnv+".")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.AddCommand(newListCmd(r, dir), newResolveCmd(r, dir))
	return root
}

// platformName returns the display name of the platform of an entry.
func platformName(dir *platform.Directory, entry plugin.Entry) string {
	if entry.Generic {
		return "*"
	}
	p, err := dir.PlatformWithId(entry.Platform)
	if err != nil {
		return entry.Platform.String()
	}
	return p.Name()
}
