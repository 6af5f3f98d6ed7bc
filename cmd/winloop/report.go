// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/winloop/internal/inspect"
	"github.com/gogpu/winloop/internal/table"
	"github.com/gogpu/winloop/surface"
)

func newReportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Describe the GPU adapter and validate the built-in shaders",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return report(o)
		},
	}
}

func report(o *options) error {
	t := table.New("PROPERTY", "VALUE")
	if o.headless {
		t.AddRow("backend", "software")
	} else {
		r, err := surface.ProbeAdapter()
		if err != nil {
			t.AddRow("adapter", fmt.Sprintf("unavailable (%v)", err))
		} else {
			t.AddRow("adapter", r.Name)
			t.AddRow("vendor", r.Vendor)
			t.AddRow("type", r.Type)
			t.AddRow("backend", r.API)
			t.AddRow("driver", r.Driver)
		}
	}
	t.AddRow("supersample", o.cfg.Supersample)
	t.AddRow("present mode", surface.PresentModeName(o.cfg.PresentModeValue()))
	if err := t.Render(o.stdout, o.color()); err != nil {
		return err
	}

	shaders, err := inspect.Shaders()
	if err != nil {
		return err
	}
	fmt.Fprintln(o.stdout)
	st := table.New("SHADER", "SPIR-V").SetAlign(1, table.Right)
	for _, s := range shaders {
		st.AddRow(s.Name, fmt.Sprintf("%d bytes", s.SPIRV))
	}
	return st.Render(o.stdout, o.color())
}
