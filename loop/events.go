// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/winloop/platform"
)

// EventSource returns a gpucontext.EventSource fed by this loop, for
// libraries written against the gpucontext callback API. Its callbacks
// run during dispatch, before the loop's own callback for the same event.
//
// The platforms here report no text or IME input, so those callbacks are
// stored but never invoked.
func (l *Loop[S]) EventSource() gpucontext.EventSource {
	if l.src == nil {
		l.src = &eventSource{}
	}
	return l.src
}

type eventSource struct {
	keyPress   func(gpucontext.Key, gpucontext.Modifiers)
	keyRelease func(gpucontext.Key, gpucontext.Modifiers)
	text       func(string)
	mouseMove  func(x, y float64)
	mousePress func(gpucontext.MouseButton, float64, float64)
	mouseRel   func(gpucontext.MouseButton, float64, float64)
	scroll     func(dx, dy float64)
	resize     func(w, h int)
	focus      func(bool)
	imeStart   func()
	imeUpdate  func(gpucontext.IMEState)
	imeEnd     func(string)

	cursorX, cursorY float64
}

var _ gpucontext.EventSource = (*eventSource)(nil)

// deliver forwards ev to the registered gpucontext callbacks. A nil
// source ignores events.
func (s *eventSource) deliver(ev platform.Event) {
	if s == nil {
		return
	}
	switch e := ev.(type) {
	case platform.KeyboardInput:
		switch {
		case e.Action == platform.Release && s.keyRelease != nil:
			s.keyRelease(e.Key, e.Mods)
		case e.Action != platform.Release && s.keyPress != nil:
			s.keyPress(e.Key, e.Mods)
		}
	case platform.CursorMoved:
		s.cursorX, s.cursorY = e.X, e.Y
		if s.mouseMove != nil {
			s.mouseMove(e.X, e.Y)
		}
	case platform.MouseInput:
		switch {
		case e.Action == platform.Release && s.mouseRel != nil:
			s.mouseRel(e.Button, s.cursorX, s.cursorY)
		case e.Action == platform.Press && s.mousePress != nil:
			s.mousePress(e.Button, s.cursorX, s.cursorY)
		}
	case platform.MouseWheel:
		if s.scroll != nil {
			s.scroll(e.DeltaX, e.DeltaY)
		}
	case platform.Resized:
		if s.resize != nil {
			s.resize(e.Width, e.Height)
		}
	case platform.Focused:
		if s.focus != nil {
			s.focus(e.Focused)
		}
	}
}

func (s *eventSource) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers)) {
	s.keyPress = fn
}

func (s *eventSource) OnKeyRelease(fn func(gpucontext.Key, gpucontext.Modifiers)) {
	s.keyRelease = fn
}

func (s *eventSource) OnTextInput(fn func(string)) {
	s.text = fn
}

func (s *eventSource) OnMouseMove(fn func(x, y float64)) {
	s.mouseMove = fn
}

func (s *eventSource) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	s.mousePress = fn
}

func (s *eventSource) OnMouseRelease(fn func(gpucontext.MouseButton, float64, float64)) {
	s.mouseRel = fn
}

func (s *eventSource) OnScroll(fn func(dx, dy float64)) {
	s.scroll = fn
}

func (s *eventSource) OnResize(fn func(width, height int)) {
	s.resize = fn
}

func (s *eventSource) OnFocus(fn func(focused bool)) {
	s.focus = fn
}

func (s *eventSource) OnIMECompositionStart(fn func()) {
	s.imeStart = fn
}

func (s *eventSource) OnIMECompositionUpdate(fn func(gpucontext.IMEState)) {
	s.imeUpdate = fn
}

func (s *eventSource) OnIMECompositionEnd(fn func(committed string)) {
	s.imeEnd = fn
}
