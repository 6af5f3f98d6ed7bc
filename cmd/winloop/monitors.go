// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/winloop/internal/table"
	"github.com/gogpu/winloop/platform"
)

func newMonitorsCmd(o *options) *cobra.Command {
	var (
		modes bool
		index int
	)
	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List connected monitors",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			p, err := o.openPlatform()
			if err != nil {
				return err
			}
			defer p.Terminate()

			monitors, err := p.Monitors()
			if err != nil {
				return err
			}
			return printMonitors(o, monitors, index, modes)
		},
	}
	cmd.Flags().BoolVar(&modes, "modes", false, "list the video modes of each monitor")
	cmd.Flags().IntVarP(&index, "number", "n", -1, "only show monitor `N`")
	return cmd
}

func printMonitors(o *options, monitors []platform.Monitor, index int, modes bool) error {
	if index >= 0 {
		if index >= len(monitors) {
			return fmt.Errorf("monitor %d out of range (%d connected)", index, len(monitors))
		}
		monitors = monitors[index : index+1]
	} else {
		index = 0
	}

	t := table.New("#", "NAME", "PRIMARY", "POSITION", "SIZE", "MODE", "DPI", "SCALE")
	t.SetAlign(0, table.Right).SetAlign(6, table.Right)
	for i, m := range monitors {
		size := "unknown"
		if m.WidthMM > 0 && m.HeightMM > 0 {
			size = fmt.Sprintf("%dx%dmm", m.WidthMM, m.HeightMM)
		}
		primary := ""
		if m.Primary {
			primary = "yes"
		}
		t.AddRow(
			index+i, m.Name, primary,
			fmt.Sprintf("%d,%d", m.X, m.Y),
			size, m.Current,
			fmt.Sprintf("%.0f", m.DPI()),
			fmt.Sprintf("%gx%g", m.ScaleX, m.ScaleY),
		)
	}
	if err := t.Render(o.stdout, o.color()); err != nil {
		return err
	}
	if !modes {
		return nil
	}

	for i, m := range monitors {
		fmt.Fprintf(o.stdout, "\n%s (%d modes)\n", m.Name, len(m.Modes))
		t := table.New("#", "WIDTH", "HEIGHT", "REFRESH", "DEPTH", "CURRENT")
		for c := 1; c <= 4; c++ {
			t.SetAlign(c, table.Right)
		}
		t.SetAlign(0, table.Right)
		for j, v := range m.Modes {
			current := ""
			if v == m.Current {
				current = "*"
			}
			t.AddRow(j, v.Width, v.Height, fmt.Sprintf("%dHz", v.RefreshRate), fmt.Sprintf("%dbpp", v.Depth()), current)
		}
		if err := t.Render(o.stdout, o.color()); err != nil {
			return fmt.Errorf("monitor %d: %w", index+i, err)
		}
	}
	return nil
}
