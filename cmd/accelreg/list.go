// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/accelreg/pkg/core/platform"
	"github.com/gomlx/accelreg/pkg/core/plugin"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

func newListCmd(r *plugin.Registry, dir *platform.Directory) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known platforms and registered plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return listJSON(cmd.OutOrStdout(), r, dir)
			}
			listTables(cmd.OutOrStdout(), r, dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON instead of tables.")
	return cmd
}

func listTables(out io.Writer, r *plugin.Registry, dir *platform.Directory) {
	platforms := dir.Platforms()
	fmt.Fprintln(out, titleStyle.Render("Platforms"))
	table := newTable(nil, "Name", "Id", "Devices")
	for _, p := range platforms {
		table.Row(p.Name(), p.Id().String(), strconv.Itoa(p.VisibleDeviceCount()))
	}
	fmt.Fprintln(out, table.Render())

	entries := r.Entries()
	fmt.Fprintln(out, titleStyle.Render("Plugins"))
	bold := make(map[int]bool)
	table = newTable(bold, "Platform", "Kind", "Name", "Id", "Default")
	for row, entry := range entries {
		isDefault := ""
		if entry.IsDefault {
			isDefault = "yes"
			bold[row] = true
		}
		table.Row(platformName(dir, entry), entry.Kind.String(), entry.Name, entry.Id.String(), isDefault)
	}
	fmt.Fprintln(out, table.Render())
	fmt.Fprintf(out, "%s plugin registrations, %s platforms\n",
		humanize.Comma(int64(len(entries))), humanize.Comma(int64(len(platforms))))
}

func listJSON(out io.Writer, r *plugin.Registry, dir *platform.Directory) error {
	doc := `{"platforms":[],"plugins":[]}`
	var err error
	for _, p := range dir.Platforms() {
		doc, err = sjson.Set(doc, "platforms.-1", map[string]any{
			"name":    p.Name(),
			"id":      p.Id().String(),
			"devices": p.VisibleDeviceCount(),
		})
		if err != nil {
			return errors.Wrapf(err, "building JSON for platform %q", p.Name())
		}
	}
	for _, entry := range r.Entries() {
		doc, err = sjson.Set(doc, "plugins.-1", map[string]any{
			"platform": platformName(dir, entry),
			"generic":  entry.Generic,
			"kind":     entry.Kind.String(),
			"name":     entry.Name,
			"id":       entry.Id.String(),
			"default":  entry.IsDefault,
		})
		if err != nil {
			return errors.Wrapf(err, "building JSON for plugin %q", entry.Name)
		}
	}
	_, err = fmt.Fprintln(out, doc)
	return err
}
