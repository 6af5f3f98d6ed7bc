// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package loop runs the window event dispatch loop.
//
// A Loop owns one window, optionally its render surface, and a table of
// typed callbacks, one slot per event kind. Run creates the window, then
// dispatches platform events to the callbacks strictly in delivery order
// until a callback asks to exit, a callback fails, or the platform closes.
//
//	l := loop.New[App](p, cfg).
//	    WithSurface(cfg.SurfaceOptions()).
//	    OnRedrawRequested(func(_ platform.RedrawRequested, app *App, ctl *loop.Control) (loop.Directive, error) {
//	        return loop.Continue, ctl.Surface().Redraw(ctx, app.Scene)
//	    })
//	code, err := l.Run(App{})
//
// Resized and ScaleFactorChanged events reconfigure the surface before the
// user callback runs, so callbacks always observe a surface matching the
// window. A close request without a callback exits. When a callback exits,
// a pending redraw is still dispatched before the loop returns.
package loop

import (
	"errors"
	"fmt"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/config"
	"github.com/gogpu/winloop/platform"
	"github.com/gogpu/winloop/surface"
)

// ErrAlreadyRun is returned by Run on a loop that already ran.
var ErrAlreadyRun = errors.New("loop: already run")

// Loop is the event dispatch loop for application state S.
type Loop[S any] struct {
	platform    platform.Platform
	cfg         config.WindowConfig
	surfaceOpts *surface.Options

	slots [platform.KindCount]slot[S]
	all   slot[S]
	ctl   Control
	src   *eventSource
	ran   bool
}

// New returns a loop that will open a window described by cfg on p.
func New[S any](p platform.Platform, cfg config.WindowConfig) *Loop[S] {
	return &Loop[S]{platform: p, cfg: cfg}
}

// WithSurface makes Run create a render surface for the window. Zero
// sizes follow the window's framebuffer.
func (l *Loop[S]) WithSurface(opts surface.Options) *Loop[S] {
	l.surfaceOpts = &opts
	return l
}

// Control returns the loop-control handle. It is fully populated only
// while Run is active.
func (l *Loop[S]) Control() *Control {
	return &l.ctl
}

// Run opens the window and dispatches events until exit. It takes
// ownership of initial and returns the process exit code: 0 when a
// callback exits or the platform closes, 1 with the error when a callback
// or the platform fails. Callback panics propagate after cleanup.
//
// Cleanup closes the surface, then the window, then terminates the
// platform.
func (l *Loop[S]) Run(initial S) (code int, err error) {
	if l.ran {
		return 1, ErrAlreadyRun
	}
	l.ran = true
	log := winloop.Logger()

	defer func() {
		if cerr := l.cleanup(); cerr != nil && err == nil {
			code, err = 1, cerr
		}
	}()

	win, err := l.platform.CreateWindow(l.cfg.Attributes())
	if err != nil {
		if !errors.Is(err, winloop.ErrInit) {
			err = fmt.Errorf("%w: create window: %w", winloop.ErrInit, err)
		}
		return 1, err
	}
	l.ctl.window = win

	if l.surfaceOpts != nil {
		s, err := surface.New(win, *l.surfaceOpts)
		if err != nil {
			return 1, err
		}
		l.ctl.surface = s
	}

	state := initial
	l.ctl.RequestRedraw()
	log.Debug("loop: running", "platform", l.platform.Name())

	for {
		events, err := l.platform.NextEvents()
		if errors.Is(err, platform.ErrClosed) {
			log.Debug("loop: platform closed")
			return 0, nil
		}
		if err != nil {
			return 1, err
		}
		for i, ev := range events {
			exit, err := l.dispatch(ev, &state)
			if err != nil {
				l.ctl.phase = Exiting
				return 1, err
			}
			if exit {
				return l.exit(events[i+1:], &state)
			}
		}
	}
}

// exit dispatches a pending redraw, from the rest of the current batch or
// requested through Control, then stops.
func (l *Loop[S]) exit(rest []platform.Event, state *S) (int, error) {
	l.ctl.phase = Exiting
	pending := l.ctl.redraw
	for _, ev := range rest {
		if _, ok := ev.(platform.RedrawRequested); ok {
			pending = true
		}
	}
	if pending {
		if fn := l.slots[platform.KindRedrawRequested]; fn != nil {
			l.ctl.redraw = false
			if _, err := fn(platform.RedrawRequested{}, state, &l.ctl); err != nil {
				return 1, err
			}
		}
	}
	winloop.Logger().Debug("loop: exit")
	return 0, nil
}

// dispatch runs the internal hooks and the callback for ev. It reports
// whether the loop should exit.
func (l *Loop[S]) dispatch(ev platform.Event, state *S) (bool, error) {
	l.ctl.phase = Dispatching
	defer func() {
		if l.ctl.phase == Dispatching {
			l.ctl.phase = Idle
		}
	}()

	if err := l.hook(ev); err != nil {
		return false, err
	}
	l.src.deliver(ev)

	exit := false
	if l.all != nil {
		d, err := l.all(ev, state, &l.ctl)
		if err != nil {
			return false, fmt.Errorf("loop: %s callback: %w", ev.Kind(), err)
		}
		exit = d == Exit
	}

	fn := l.slots[ev.Kind()]
	switch {
	case fn != nil:
		d, err := fn(ev, state, &l.ctl)
		if err != nil {
			return false, fmt.Errorf("loop: %s callback: %w", ev.Kind(), err)
		}
		exit = exit || d == Exit
	case ev.Kind() == platform.KindCloseRequested:
		exit = true
	}
	return exit || l.ctl.exit, nil
}

// hook applies the loop's own handling before user callbacks.
func (l *Loop[S]) hook(ev platform.Event) error {
	switch e := ev.(type) {
	case platform.RedrawRequested:
		l.ctl.redraw = false
	case platform.Resized:
		return l.resizeSurface(e.Width, e.Height)
	case platform.ScaleFactorChanged:
		if l.ctl.window != nil {
			return l.resizeSurface(l.ctl.window.Size())
		}
	}
	return nil
}

func (l *Loop[S]) resizeSurface(width, height int) error {
	s := l.ctl.surface
	if s == nil {
		return nil
	}
	err := s.Resize(width, height)
	switch {
	case err == nil:
		l.ctl.RequestRedraw()
		return nil
	case errors.Is(err, surface.ErrInvalidSize), errors.Is(err, winloop.ErrSurfaceLost):
		// The surface keeps its size or retries it on the next Acquire.
		winloop.Logger().Debug("loop: surface not resized", "err", err)
		return nil
	default:
		return err
	}
}

// cleanup releases the surface, then the window, then the platform.
func (l *Loop[S]) cleanup() error {
	var errs []error
	if s := l.ctl.surface; s != nil {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if w := l.ctl.window; w != nil {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := l.platform.Terminate(); err != nil {
		errs = append(errs, err)
	}
	l.ctl.phase = Exiting
	return errors.Join(errs...)
}
