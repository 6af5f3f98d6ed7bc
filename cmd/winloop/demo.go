// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"image/color"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/config"
	"github.com/gogpu/winloop/loop"
	"github.com/gogpu/winloop/platform"
	"github.com/gogpu/winloop/render"
	"github.com/gogpu/winloop/scene"
	"github.com/gogpu/winloop/state"
)

// demo is the application state of the root command.
type demo struct {
	ctx    context.Context
	cfg    *state.Cell[config.WindowConfig]
	scene  *scene.Scene
	frames int
	limit  int
	gen    uint64

	// onFirstFrame runs once with the window, after it is created.
	onFirstFrame func(w platform.Window)
}

// demoScene is a padded row of three circles over a dark panel.
func demoScene() *scene.Scene {
	palette := []color.Color{
		color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff},
		color.NRGBA{R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
		color.NRGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	}
	row := scene.NewDiv()
	row.Box().Gap = 16
	row.Box().Padding = scene.All(24)
	row.Background = color.NRGBA{R: 0x26, G: 0x32, B: 0x38, A: 0xff}
	for _, c := range palette {
		row.Append(scene.NewShape(&scene.Circle{Color: c}))
	}

	root := scene.NewDiv(row)
	root.Box().Padding = scene.All(32)
	return scene.New(root)
}

func runDemo(ctx context.Context, o *options) error {
	cfg := o.cfg
	if o.headless {
		cfg.Backend = "software"
	}
	cell := state.New(cfg)

	p, err := o.openPlatform()
	if err != nil {
		return err
	}

	app := &demo{ctx: ctx, cfg: cell, scene: demoScene(), gen: cell.Read().Generation()}
	if o.headless {
		app.limit = max(o.frames, 1)
	}

	l := loop.New[*demo](p, cfg).WithSurface(cfg.SurfaceOptions())
	l.OnResized(func(_ platform.Resized, d **demo, ctl *loop.Control) (loop.Directive, error) {
		(*d).resize(ctl)
		return loop.Continue, nil
	})
	l.OnScaleFactorChanged(func(ev platform.ScaleFactorChanged, d **demo, _ *loop.Control) (loop.Directive, error) {
		(*d).scene.ScaleFactorChanged(ev.Factor)
		return loop.Continue, nil
	})
	l.OnKeyboardInput(func(ev platform.KeyboardInput, _ **demo, _ *loop.Control) (loop.Directive, error) {
		if ev.Key == gpucontext.KeyEscape && ev.Action == platform.Press {
			return loop.Exit, nil
		}
		return loop.Continue, nil
	})
	l.OnRedrawRequested(func(_ platform.RedrawRequested, d **demo, ctl *loop.Control) (loop.Directive, error) {
		return (*d).redraw(ctl)
	})

	if o.watch && o.configPath != "" {
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		app.onFirstFrame = func(w platform.Window) {
			go func() {
				wake := func(config.WindowConfig) { w.RequestRedraw() }
				if err := config.Watch(wctx, o.configPath, cell, nil, wake); err != nil {
					winloop.Logger().Warn("config: watch stopped", "err", err)
				}
			}()
		}
	}

	code, err := l.Run(app)
	if err != nil {
		return err
	}
	if o.headless {
		fmt.Fprintf(o.stdout, "rendered %d frames\n", app.frames)
	}
	if code != 0 {
		return fmt.Errorf("exit code %d", code)
	}
	return nil
}

// resize lays the scene out at the surface size, in physical framebuffer
// pixels.
func (d *demo) resize(ctl *loop.Control) {
	s := ctl.Surface()
	if s == nil {
		return
	}
	w, h := s.Size()
	d.scene.Resize(scene.Size{Width: w, Height: h})
}

func (d *demo) redraw(ctl *loop.Control) (loop.Directive, error) {
	s := ctl.Surface()
	if s == nil {
		return loop.Continue, nil
	}
	if d.scene.Size() == (scene.Size{}) {
		d.resize(ctl)
	}
	if d.onFirstFrame != nil {
		d.onFirstFrame(ctl.Window())
		d.onFirstFrame = nil
	}
	snap := d.cfg.Read()
	if g := snap.Generation(); g != d.gen {
		d.gen = g
		ctl.Window().SetTitle(snap.Value().Title)
	}
	err := s.Redraw(d.ctx, render.Clear{Color: snap.Value().ClearColor}, d.scene)
	switch winloop.Classify(err) {
	case winloop.Proceed:
	case winloop.SkipFrame:
		return loop.Continue, nil
	default:
		return loop.Exit, err
	}
	d.frames++
	if d.limit > 0 && d.frames < d.limit {
		ctl.RequestRedraw()
	}
	return loop.Continue, nil
}
