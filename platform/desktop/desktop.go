// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package desktop implements platform.Platform on GLFW.
//
// GLFW must be driven from the main OS thread. The package locks the
// initial goroutine to it in init, so New, CreateWindow, NextEvents and
// Terminate must be called from main's goroutine. Wake and
// Window.RequestRedraw may be called from anywhere.
//
// Windows are created without a client API; the GPU surface is made from
// the window's native handles. Joysticks are polled after every event
// wait and reported as AxisMotion and DeviceButton events. GLFW reports no
// touchpad pressure, so TouchpadPressure is never delivered.
package desktop

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/platform"
)

func init() {
	runtime.LockOSThread()
}

// joystickInterval is the event wait timeout while a joystick is
// connected, in seconds.
const joystickInterval = 1.0 / 120

// Platform is the GLFW platform. Only one may exist at a time.
type Platform struct {
	mu         sync.Mutex
	queue      []platform.Event
	window     *Window
	terminated bool

	joysticks map[glfw.Joystick]*joystickState
}

var _ platform.Platform = (*Platform)(nil)

// New initializes GLFW.
func New() (*Platform, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw: %w", winloop.ErrInit, err)
	}
	p := &Platform{joysticks: make(map[glfw.Joystick]*joystickState)}
	glfw.SetJoystickCallback(p.joystickChanged)
	p.scanJoysticks()
	major, minor, rev := glfw.GetVersion()
	winloop.Logger().Debug("desktop: glfw initialized", "version", fmt.Sprintf("%d.%d.%d", major, minor, rev))
	return p, nil
}

// Name implements platform.Platform.
func (p *Platform) Name() string { return "glfw" }

// CreateWindow implements platform.Platform. Only one window may be open.
func (p *Platform) CreateWindow(attrs platform.WindowAttributes) (platform.Window, error) {
	if err := attrs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", winloop.ErrInit, err)
	}
	if p.terminated {
		return nil, platform.ErrClosed
	}
	if p.window != nil {
		return nil, fmt.Errorf("%w: desktop platform supports one window", winloop.ErrUnsupported)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, boolHint(attrs.Resizable))
	glfw.WindowHint(glfw.Decorated, boolHint(attrs.Decorated))
	glfw.WindowHint(glfw.Visible, boolHint(attrs.Visible))
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	glw, err := glfw.CreateWindow(attrs.Width, attrs.Height, attrs.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: glfw: create window: %w", winloop.ErrInit, err)
	}
	w := &Window{p: p, glw: glw, attrs: attrs}
	w.cursorX, w.cursorY = glw.GetCursorPos()
	w.install()
	p.window = w

	fw, fh := glw.GetFramebufferSize()
	winloop.Logger().Info("desktop: window created", "title", attrs.Title, "width", fw, "height", fh)
	return w, nil
}

// Monitors implements platform.Platform.
func (p *Platform) Monitors() ([]platform.Monitor, error) {
	if p.terminated {
		return nil, platform.ErrClosed
	}
	return monitors(), nil
}

// NextEvents implements platform.Platform. It blocks in glfw.WaitEvents
// unless a redraw is pending, in which case it only polls.
func (p *Platform) NextEvents() ([]platform.Event, error) {
	if p.terminated {
		return nil, platform.ErrClosed
	}
	for {
		switch {
		case p.redrawPending():
			glfw.PollEvents()
		case len(p.joysticks) > 0:
			glfw.WaitEventsTimeout(joystickInterval)
		default:
			glfw.WaitEvents()
		}
		p.pollJoysticks()

		events := p.drain()
		if len(events) > 0 {
			return events, nil
		}
		if p.terminated {
			return nil, platform.ErrClosed
		}
	}
}

// push queues an event. Callbacks run on the main thread inside the GLFW
// event functions.
func (p *Platform) push(ev platform.Event) {
	p.mu.Lock()
	p.queue = append(p.queue, ev)
	p.mu.Unlock()
}

func (p *Platform) drain() []platform.Event {
	p.mu.Lock()
	events := p.queue
	p.queue = nil
	p.mu.Unlock()

	if w := p.window; w != nil && w.redraw.CompareAndSwap(true, false) {
		events = append(events, platform.RedrawRequested{})
	}
	return events
}

func (p *Platform) redrawPending() bool {
	w := p.window
	return w != nil && w.redraw.Load()
}

// Wake implements platform.Platform.
func (p *Platform) Wake() {
	glfw.PostEmptyEvent()
}

// Terminate implements platform.Platform. An open window is destroyed.
func (p *Platform) Terminate() error {
	if p.terminated {
		return nil
	}
	if w := p.window; w != nil {
		if err := w.Close(); err != nil {
			return err
		}
	}
	glfw.SetJoystickCallback(nil)
	glfw.Terminate()
	p.terminated = true
	winloop.Logger().Debug("desktop: glfw terminated")
	return nil
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}
