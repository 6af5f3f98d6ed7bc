// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform defines the windowing system the dispatch loop runs on:
// a Platform that creates windows and pumps events, the Window it returns,
// monitors with their video modes, and the typed events it delivers.
//
// Two implementations exist. platform/desktop drives GLFW and hands the
// native handles of its windows to the wgpu surface backend.
// platform/headless replays a scripted event sequence in memory.
package platform

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Errors.
var (
	// ErrClosed is returned by NextEvents after the platform terminated or,
	// for scripted platforms, after the script ran out.
	ErrClosed = errors.New("platform: closed")

	// ErrNoHandles is returned by NativeHandles when the window system
	// exposes no handles a GPU surface can be created from.
	ErrNoHandles = errors.New("platform: native handles unavailable")
)

// Platform is a windowing system connection.
//
// All methods except Wake must be called from the goroutine that created
// the platform. Desktop implementations require that goroutine to be
// locked to the main OS thread.
type Platform interface {
	// Name identifies the implementation ("glfw", "headless").
	Name() string

	// CreateWindow opens a window with the given attributes.
	CreateWindow(attrs WindowAttributes) (Window, error)

	// Monitors lists the connected monitors, primary first.
	Monitors() ([]Monitor, error)

	// NextEvents blocks until at least one event is available and returns
	// every queued event in arrival order. A pending redraw request is
	// delivered as a single RedrawRequested after the input events.
	NextEvents() ([]Event, error)

	// Wake interrupts a blocked NextEvents. It is safe to call from any
	// goroutine.
	Wake()

	// Terminate releases the window system connection. Windows must be
	// closed first.
	Terminate() error
}

// NativeWindow is what a GPU surface needs from a window: its framebuffer
// size, its content scale, redraw scheduling, and the OS handles.
type NativeWindow interface {
	gpucontext.WindowProvider

	// NativeHandles returns the display connection and window handles
	// for surface creation.
	NativeHandles() (NativeHandles, error)
}

// NativeHandles are the OS handles a wgpu surface is created from.
// Display is zero on platforms without a display connection (Windows).
type NativeHandles struct {
	Display uintptr
	Window  uintptr
}

// Window is a top-level window.
//
// Size reports the framebuffer size in physical pixels. RequestRedraw is
// coalesced: any number of requests before the next NextEvents yield one
// RedrawRequested. It may be called from any goroutine.
type Window interface {
	NativeWindow

	// SetTitle changes the window title.
	SetTitle(title string)

	// Attributes returns the attributes the window was created with,
	// with Width and Height updated to the current framebuffer size.
	Attributes() WindowAttributes

	// Close destroys the window. Any surface created for it must be
	// released before.
	Close() error
}

// WindowAttributes describe a window to create.
type WindowAttributes struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	Decorated bool
	Visible   bool
}

// Validate reports an error for a window that cannot be created.
func (a WindowAttributes) Validate() error {
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("platform: invalid window size %dx%d", a.Width, a.Height)
	}
	return nil
}

// Monitor describes a connected display.
type Monitor struct {
	Name    string
	Primary bool

	// X and Y are the position of the monitor on the virtual desktop.
	X, Y int

	// WidthMM and HeightMM are the physical size, zero if unknown.
	WidthMM, HeightMM int

	// ScaleX and ScaleY are the content scale.
	ScaleX, ScaleY float32

	Current VideoMode
	Modes   []VideoMode
}

// DPI returns the physical horizontal dots per inch, or zero if the
// physical size is unknown.
func (m Monitor) DPI() float64 {
	if m.WidthMM <= 0 {
		return 0
	}
	return 25.4 * float64(m.Current.Width) / float64(m.WidthMM)
}

// VideoMode is a display resolution, color depth and refresh rate.
type VideoMode struct {
	Width       int
	Height      int
	RedBits     int
	GreenBits   int
	BlueBits    int
	RefreshRate int
}

// Depth returns the total color bit depth.
func (v VideoMode) Depth() int {
	return v.RedBits + v.GreenBits + v.BlueBits
}

// String formats the mode as "1920x1080@60Hz 24bpp".
func (v VideoMode) String() string {
	return fmt.Sprintf("%dx%d@%dHz %dbpp", v.Width, v.Height, v.RefreshRate, v.Depth())
}
