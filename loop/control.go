// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop

import (
	"fmt"

	"github.com/gogpu/winloop/platform"
	"github.com/gogpu/winloop/surface"
)

// Directive is a callback's decision about the loop.
type Directive uint8

const (
	// Continue keeps the loop running.
	Continue Directive = iota
	// Exit stops the loop once a pending redraw has been dispatched.
	Exit
)

// String returns the directive name.
func (d Directive) String() string {
	switch d {
	case Continue:
		return "continue"
	case Exit:
		return "exit"
	default:
		return fmt.Sprintf("Directive(%d)", d)
	}
}

// Phase is the state of the dispatch loop.
type Phase uint8

const (
	// Idle waits for the next platform event.
	Idle Phase = iota
	// Dispatching runs a callback.
	Dispatching
	// Exiting dispatches the final pending redraw and cleans up.
	Exiting
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dispatching:
		return "dispatching"
	case Exiting:
		return "exiting"
	default:
		return fmt.Sprintf("Phase(%d)", p)
	}
}

// Control is the loop-control handle passed to every callback.
type Control struct {
	window  platform.Window
	surface *surface.Surface
	phase   Phase
	exit    bool
	redraw  bool
}

// RequestRedraw schedules a RedrawRequested event. Requests are coalesced
// by the platform.
func (c *Control) RequestRedraw() {
	c.redraw = true
	if c.window != nil {
		c.window.RequestRedraw()
	}
}

// Exit stops the loop after the current callback returns, as if it had
// returned the Exit directive.
func (c *Control) Exit() {
	c.exit = true
}

// Exiting reports whether Exit was requested.
func (c *Control) Exiting() bool {
	return c.exit || c.phase == Exiting
}

// Surface returns the window's surface, or nil when the loop was built
// without one.
func (c *Control) Surface() *surface.Surface {
	return c.surface
}

// Window returns the loop's window.
func (c *Control) Window() platform.Window {
	return c.window
}

// Phase returns the current phase.
func (c *Control) Phase() Phase {
	return c.phase
}
