// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless is an in-memory platform that replays a scripted event
// sequence. It backs tests and the --headless mode of the command.
//
// Each NextEvents call delivers the next scripted event followed by a
// RedrawRequested if one is pending. Once the script is exhausted and no
// redraw is pending the platform sends a single CloseRequested, after
// which NextEvents returns platform.ErrClosed.
//
// Scripted Resized events set the framebuffer size. ScaleFactorChanged
// keeps the logical size and rescales the framebuffer by the ratio of the
// new factor to the old one, as desktop window systems do.
package headless

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/platform"
)

// Platform is a scripted platform.Platform.
type Platform struct {
	mu         sync.Mutex
	script     []platform.Event
	pos        int
	monitors   []platform.Monitor
	window     *Window
	closeSent  bool
	terminated bool
	journal    []string

	// OnWindowClose, if set, runs when a window is closed, before it is
	// marked closed.
	OnWindowClose func(w *Window)
}

var _ platform.Platform = (*Platform)(nil)

// New returns a platform that will deliver script in order.
func New(script ...platform.Event) *Platform {
	return &Platform{
		script:   script,
		monitors: DefaultMonitors(),
	}
}

// DefaultMonitors returns the single simulated monitor.
func DefaultMonitors() []platform.Monitor {
	modes := []platform.VideoMode{
		{Width: 1280, Height: 720, RedBits: 8, GreenBits: 8, BlueBits: 8, RefreshRate: 60},
		{Width: 1920, Height: 1080, RedBits: 8, GreenBits: 8, BlueBits: 8, RefreshRate: 60},
		{Width: 1920, Height: 1080, RedBits: 8, GreenBits: 8, BlueBits: 8, RefreshRate: 144},
	}
	return []platform.Monitor{{
		Name:     "headless-0",
		Primary:  true,
		WidthMM:  527,
		HeightMM: 296,
		ScaleX:   1,
		ScaleY:   1,
		Current:  modes[1],
		Modes:    modes,
	}}
}

// Name implements platform.Platform.
func (p *Platform) Name() string { return "headless" }

// SetMonitors replaces the simulated monitors.
func (p *Platform) SetMonitors(monitors ...platform.Monitor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.monitors = monitors
}

// Push appends events to the script. It is safe to call from any
// goroutine.
func (p *Platform) Push(events ...platform.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.script = append(p.script, events...)
}

// CreateWindow implements platform.Platform. Only one window may be open.
func (p *Platform) CreateWindow(attrs platform.WindowAttributes) (platform.Window, error) {
	if err := attrs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", winloop.ErrInit, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.terminated {
		return nil, platform.ErrClosed
	}
	if p.window != nil && !p.window.Closed() {
		return nil, fmt.Errorf("%w: headless platform supports one window", winloop.ErrUnsupported)
	}
	p.window = &Window{p: p, attrs: attrs, scale: 1}
	p.journal = append(p.journal, "create "+attrs.Title)
	winloop.Logger().Info("headless: window created", "title", attrs.Title, "width", attrs.Width, "height", attrs.Height)
	return p.window, nil
}

// Window returns the open window, or nil.
func (p *Platform) Window() *Window {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window
}

// Monitors implements platform.Platform.
func (p *Platform) Monitors() ([]platform.Monitor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.terminated {
		return nil, platform.ErrClosed
	}
	return append([]platform.Monitor(nil), p.monitors...), nil
}

// NextEvents implements platform.Platform. It never blocks.
func (p *Platform) NextEvents() ([]platform.Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.terminated {
		return nil, platform.ErrClosed
	}

	var events []platform.Event
	if p.pos < len(p.script) {
		ev := p.script[p.pos]
		p.pos++
		p.apply(ev)
		events = append(events, ev)
	}
	if w := p.window; w != nil && w.redraw.CompareAndSwap(true, false) {
		events = append(events, platform.RedrawRequested{})
	}
	if len(events) > 0 {
		return events, nil
	}
	if !p.closeSent {
		p.closeSent = true
		return []platform.Event{platform.CloseRequested{}}, nil
	}
	return nil, platform.ErrClosed
}

// apply mirrors what a window system does before reporting ev.
func (p *Platform) apply(ev platform.Event) {
	w := p.window
	if w == nil {
		return
	}
	switch e := ev.(type) {
	case platform.Resized:
		w.mu.Lock()
		w.attrs.Width, w.attrs.Height = e.Width, e.Height
		w.mu.Unlock()
	case platform.ScaleFactorChanged:
		// The logical size is kept, so the framebuffer follows the factor.
		w.mu.Lock()
		if e.Factor > 0 && w.scale > 0 {
			r := e.Factor / w.scale
			w.attrs.Width = rescale(w.attrs.Width, r)
			w.attrs.Height = rescale(w.attrs.Height, r)
			w.scale = e.Factor
		}
		w.mu.Unlock()
	}
}

// rescale scales a framebuffer side by r. Minimized sides stay as they are.
func rescale(v int, r float64) int {
	if v <= 0 {
		return v
	}
	return max(int(math.Round(float64(v)*r)), 1)
}

// Remaining returns the number of scripted events not yet delivered.
func (p *Platform) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.script) - p.pos
}

// Wake implements platform.Platform. Scripted platforms never block, so
// there is nothing to interrupt.
func (p *Platform) Wake() {}

// Terminate implements platform.Platform.
func (p *Platform) Terminate() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.terminated {
		return nil
	}
	p.terminated = true
	p.journal = append(p.journal, "terminate")
	return nil
}

// Terminated reports whether Terminate was called.
func (p *Platform) Terminated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.terminated
}

// Journal returns the lifecycle operations performed so far, such as
// "create <title>", "close <title>" and "terminate".
func (p *Platform) Journal() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.journal...)
}

// Window is a headless platform.Window with a simulated framebuffer size.
type Window struct {
	p      *Platform
	mu     sync.Mutex
	attrs  platform.WindowAttributes
	scale  float64
	redraw atomic.Bool
	closed atomic.Bool
}

var _ platform.Window = (*Window)(nil)

// Size implements gpucontext.WindowProvider.
func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attrs.Width, w.attrs.Height
}

// ScaleFactor implements gpucontext.WindowProvider.
func (w *Window) ScaleFactor() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scale
}

// RequestRedraw implements gpucontext.WindowProvider.
func (w *Window) RequestRedraw() {
	w.redraw.Store(true)
}

// RedrawPending reports whether a redraw was requested and not yet
// delivered.
func (w *Window) RedrawPending() bool {
	return w.redraw.Load()
}

// NativeHandles implements platform.NativeWindow. Headless windows have no
// OS handles.
func (w *Window) NativeHandles() (platform.NativeHandles, error) {
	return platform.NativeHandles{}, platform.ErrNoHandles
}

// SetTitle implements platform.Window.
func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.attrs.Title = title
}

// Attributes implements platform.Window.
func (w *Window) Attributes() platform.WindowAttributes {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.attrs
}

// Close implements platform.Window.
func (w *Window) Close() error {
	if w.closed.Load() {
		return nil
	}
	if hook := w.p.OnWindowClose; hook != nil {
		hook(w)
	}
	w.closed.Store(true)
	w.p.mu.Lock()
	w.p.journal = append(w.p.journal, "close "+w.Attributes().Title)
	w.p.mu.Unlock()
	return nil
}

// Closed reports whether Close was called.
func (w *Window) Closed() bool {
	return w.closed.Load()
}
