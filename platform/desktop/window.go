// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package desktop

import (
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/winloop/platform"
)

// Window is a GLFW window.
type Window struct {
	p      *Platform
	glw    *glfw.Window
	attrs  platform.WindowAttributes
	redraw atomic.Bool
	closed bool

	cursorX, cursorY float64
}

var _ platform.Window = (*Window)(nil)

// install routes the GLFW callbacks into the platform queue.
func (w *Window) install() {
	glw, p := w.glw, w.p

	glw.SetCloseCallback(func(gw *glfw.Window) {
		// The application decides whether to close.
		gw.SetShouldClose(false)
		p.push(platform.CloseRequested{})
	})
	glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		p.push(platform.Resized{Width: width, Height: height})
	})
	glw.SetContentScaleCallback(func(_ *glfw.Window, x, _ float32) {
		p.push(platform.ScaleFactorChanged{Factor: float64(x)})
	})
	glw.SetRefreshCallback(func(*glfw.Window) {
		w.redraw.Store(true)
	})
	glw.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		p.push(platform.Focused{Focused: focused})
	})
	glw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		p.push(platform.KeyboardInput{
			Key:      mapKey(key),
			Scancode: scancode,
			Action:   mapAction(action),
			Mods:     mapMods(mods),
		})
	})
	glw.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := mapButton(button)
		if !ok {
			return
		}
		p.push(platform.MouseInput{Button: b, Action: mapAction(action), Mods: mapMods(mods)})
	})
	glw.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		dx, dy := x-w.cursorX, y-w.cursorY
		w.cursorX, w.cursorY = x, y
		p.push(platform.CursorMoved{X: x, Y: y})
		if dx != 0 || dy != 0 {
			p.push(platform.DeviceMotion{DeltaX: dx, DeltaY: dy})
		}
	})
	glw.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if entered {
			p.push(platform.CursorEntered{})
			return
		}
		p.push(platform.CursorLeft{})
	})
	glw.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		p.push(platform.MouseWheel{DeltaX: xoff, DeltaY: yoff, Mode: platform.LineDelta})
	})
}

// Size implements gpucontext.WindowProvider. It reports the framebuffer
// size, which differs from the window size on high-DPI displays.
func (w *Window) Size() (int, int) {
	if w.closed {
		return 0, 0
	}
	return w.glw.GetFramebufferSize()
}

// ScaleFactor implements gpucontext.WindowProvider.
func (w *Window) ScaleFactor() float64 {
	if w.closed {
		return 1
	}
	x, _ := w.glw.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

// RequestRedraw implements gpucontext.WindowProvider. It wakes a blocked
// NextEvents.
func (w *Window) RequestRedraw() {
	if !w.redraw.Swap(true) {
		glfw.PostEmptyEvent()
	}
}

// NativeHandles implements platform.NativeWindow.
func (w *Window) NativeHandles() (platform.NativeHandles, error) {
	if w.closed {
		return platform.NativeHandles{}, platform.ErrClosed
	}
	return nativeHandles(w.glw)
}

// SetTitle implements platform.Window.
func (w *Window) SetTitle(title string) {
	if w.closed {
		return
	}
	w.attrs.Title = title
	w.glw.SetTitle(title)
}

// Attributes implements platform.Window.
func (w *Window) Attributes() platform.WindowAttributes {
	attrs := w.attrs
	if !w.closed {
		attrs.Width, attrs.Height = w.glw.GetFramebufferSize()
	}
	return attrs
}

// Close implements platform.Window.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.glw.Destroy()
	if w.p.window == w {
		w.p.window = nil
	}
	return nil
}
