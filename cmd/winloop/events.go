// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/spf13/cobra"

	"github.com/gogpu/winloop/loop"
	"github.com/gogpu/winloop/platform"
)

// eventScript is replayed by the events command under --headless. It
// covers every category the loop dispatches.
func eventScript() []platform.Event {
	return []platform.Event{
		platform.Focused{Focused: true},
		platform.Resized{Width: 1024, Height: 768},
		platform.ScaleFactorChanged{Factor: 2},
		platform.CursorEntered{},
		platform.CursorMoved{X: 120, Y: 80},
		platform.DeviceMotion{DeltaX: 4, DeltaY: -2},
		platform.MouseInput{Button: gpucontext.MouseButtonLeft, Action: platform.Press},
		platform.MouseInput{Button: gpucontext.MouseButtonLeft, Action: platform.Release},
		platform.MouseWheel{DeltaY: -1, Mode: platform.LineDelta},
		platform.TouchpadPressure{Pressure: 0.5, Stage: 1},
		platform.KeyboardInput{Key: gpucontext.KeyA, Scancode: 38, Action: platform.Press, Mods: gpucontext.ModShift},
		platform.KeyboardInput{Key: gpucontext.KeyA, Scancode: 38, Action: platform.Release},
		platform.AxisMotion{Device: 0, Axis: 1, Value: 0.75},
		platform.DeviceButton{Device: 0, Button: 3, Action: platform.Press},
		platform.CursorLeft{},
		platform.Focused{Focused: false},
	}
}

func newEventsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Open a window and print every event as it is dispatched",
		Long: "Open a window and print every event as it is dispatched.\n" +
			"Press Escape or close the window to stop.",
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			p, err := o.openPlatform(eventScript()...)
			if err != nil {
				return err
			}
			cfg := o.cfg
			cfg.Title = "winloop events"

			l := loop.New[int](p, cfg)
			l.OnAny(func(ev platform.Event, n *int, _ *loop.Control) (loop.Directive, error) {
				*n++
				_, err := fmt.Fprintf(o.stdout, "%4d %s\n", *n, platform.Describe(ev))
				return loop.Continue, err
			})
			l.OnKeyboardInput(func(ev platform.KeyboardInput, _ *int, _ *loop.Control) (loop.Directive, error) {
				if ev.Key == gpucontext.KeyEscape && ev.Action == platform.Press {
					return loop.Exit, nil
				}
				return loop.Continue, nil
			})
			_, err = l.Run(0)
			return err
		},
	}
}
