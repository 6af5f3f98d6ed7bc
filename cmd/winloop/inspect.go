// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/winloop/internal/inspect"
	"github.com/gogpu/winloop/internal/table"
)

func newFontCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "font <file>",
		Short: "Print the metadata of a TrueType or OpenType font",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			info, err := inspect.Font(args[0])
			if err != nil {
				return err
			}
			missing := "none"
			if len(info.Missing) > 0 {
				missing = strings.Join(strings.Split(string(info.Missing), ""), " ")
			}
			t := table.New("PROPERTY", "VALUE")
			t.AddRow("file", info.Path)
			t.AddRow("family", info.Family)
			t.AddRow("full name", info.FullName)
			t.AddRow("glyphs", info.NumGlyphs)
			t.AddRow("units per em", info.UnitsPerEm)
			t.AddRow("ascent", info.Ascent)
			t.AddRow("descent", info.Descent)
			t.AddRow("line gap", info.LineGap)
			t.AddRow("weight", info.Weight)
			t.AddRow("italic", info.Italic)
			t.AddRow("missing", missing)
			return t.Render(o.stdout, o.color())
		},
	}
}

func newBitmapCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bitmap <file>",
		Short: "Print the size and per-channel pixel counts of a BMP, PNG or WebP image",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			info, err := inspect.Bitmap(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(o.stdout, "%s: %s %dx%d, %d pixels\n", info.Path, info.Format, info.Width, info.Height, info.Pixels())
			t := table.New("CHANNEL", "NON-ZERO").SetAlign(1, table.Right)
			t.AddRow("red", info.Red)
			t.AddRow("green", info.Green)
			t.AddRow("blue", info.Blue)
			t.AddRow("alpha", info.Alpha)
			t.AddRow("opaque", info.Opaque)
			return t.Render(o.stdout, o.color())
		},
	}
}
