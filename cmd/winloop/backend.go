// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/winloop/internal/table"
	"github.com/gogpu/winloop/surface"
)

func newBackendCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "backend",
		Short: "List the registered surface backends",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			selected := o.cfg.Backend
			if selected == "" {
				if avail := surface.Available(); len(avail) > 0 {
					selected = avail[0]
				}
			}

			t := table.New("NAME", "PRIORITY", "AVAILABLE", "SELECTED").SetAlign(1, table.Right)
			for _, name := range surface.List() {
				e, ok := surface.Get(name)
				if !ok {
					continue
				}
				avail, mark := "no", ""
				if e.Available == nil || e.Available() {
					avail = "yes"
				}
				if name == selected {
					mark = "*"
				}
				t.AddRow(e.Name, e.Priority, avail, mark)
			}
			return t.Render(o.stdout, o.color())
		},
	}
}
