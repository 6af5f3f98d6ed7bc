// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop_test

import (
	"context"
	"fmt"
	"image/color"

	"github.com/gogpu/winloop/config"
	"github.com/gogpu/winloop/loop"
	"github.com/gogpu/winloop/platform"
	"github.com/gogpu/winloop/platform/headless"
	"github.com/gogpu/winloop/render"
)

type appState struct{ frames int }

// ExampleLoop_Run opens a window with a surface, clears it on every redraw
// and exits when the window is closed.
func ExampleLoop_Run() {
	ctx := context.Background()
	p := headless.New(platform.Resized{Width: 320, Height: 240})

	cfg := config.Default()
	cfg.Backend = "software"
	var final appState
	l := loop.New[appState](p, cfg).
		WithSurface(cfg.SurfaceOptions()).
		OnRedrawRequested(func(_ platform.RedrawRequested, st *appState, ctl *loop.Control) (loop.Directive, error) {
			st.frames++
			final = *st
			return loop.Continue, ctl.Surface().Redraw(ctx, render.Clear{Color: color.White})
		})

	code, err := l.Run(appState{})
	if err != nil {
		fmt.Println("run failed:", err)
		return
	}
	fmt.Println("exit code", code)
	fmt.Println("frames", final.frames)
	// Output:
	// exit code 0
	// frames 2
}
