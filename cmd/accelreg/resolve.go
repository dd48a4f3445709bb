// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/gomlx/accelreg/pkg/core/plugin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newResolveCmd(r *plugin.Registry, dir *platform.Directory) *cobra.Command {
	var platformFlag, kindFlag, pluginFlag string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show which plugin a lookup resolves to",
		Long: "Resolves a plugin lookup the way executors do: the --plugin name if given, otherwise the " +
			"platform's default for the kind.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := dir.PlatformWithName(platformFlag)
			if err != nil {
				return err
			}
			kind, err := plugin.KindString(kindFlag)
			if err != nil || !kind.IsValid() {
				return errors.Wrapf(plugin.ErrInvalidKind, "--kind=%q, valid values are blas, dnn and fft", kindFlag)
			}
			id := plugin.Default
			if pluginFlag != "" {
				if id, err = r.LookupName(pluginFlag); err != nil {
					return err
				}
			}
			if _, err = r.GetFactory(p.Id(), kind, id); err != nil {
				return err
			}
			if id == plugin.Default {
				id = r.DefaultFactory(p.Id(), kind)
			}
			name, _ := r.Name(id)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s plugin for platform %s: %s (%s)\n", kind, p.Name(), name, id)
			return err
		},
	}
	cmd.Flags().StringVar(&platformFlag, "platform", "host", "Name of the platform.")
	cmd.Flags().StringVar(&kindFlag, "kind", "", "Kind of plugin: blas, dnn or fft.")
	cmd.Flags().StringVar(&pluginFlag, "plugin", "", "Name of the plugin. If empty, the platform's default is used.")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}
