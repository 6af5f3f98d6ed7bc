// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package loop

import "github.com/gogpu/winloop/platform"

// Handler is a typed callback for events of type E. It may mutate the
// application state and returns a directive for the loop. A returned
// error terminates the loop.
type Handler[S any, E platform.Event] func(ev E, state *S, ctl *Control) (Directive, error)

// slot is the type-erased form stored per event kind.
type slot[S any] func(ev platform.Event, state *S, ctl *Control) (Directive, error)

func erase[S any, E platform.Event](fn Handler[S, E]) slot[S] {
	if fn == nil {
		return nil
	}
	return func(ev platform.Event, state *S, ctl *Control) (Directive, error) {
		return fn(ev.(E), state, ctl)
	}
}

// OnCloseRequested registers the close callback. Without one, a close
// request exits the loop.
func (l *Loop[S]) OnCloseRequested(fn Handler[S, platform.CloseRequested]) *Loop[S] {
	l.slots[platform.KindCloseRequested] = erase(fn)
	return l
}

// OnKeyboardInput registers the keyboard callback.
func (l *Loop[S]) OnKeyboardInput(fn Handler[S, platform.KeyboardInput]) *Loop[S] {
	l.slots[platform.KindKeyboardInput] = erase(fn)
	return l
}

// OnResized registers the resize callback. It runs after the surface has
// been reconfigured for the new size.
func (l *Loop[S]) OnResized(fn Handler[S, platform.Resized]) *Loop[S] {
	l.slots[platform.KindResized] = erase(fn)
	return l
}

// OnRedrawRequested registers the redraw callback, which is expected to
// render a frame through Control.Surface.
func (l *Loop[S]) OnRedrawRequested(fn Handler[S, platform.RedrawRequested]) *Loop[S] {
	l.slots[platform.KindRedrawRequested] = erase(fn)
	return l
}

// OnCursorMoved registers the cursor motion callback.
func (l *Loop[S]) OnCursorMoved(fn Handler[S, platform.CursorMoved]) *Loop[S] {
	l.slots[platform.KindCursorMoved] = erase(fn)
	return l
}

// OnCursorEntered registers the cursor enter callback.
func (l *Loop[S]) OnCursorEntered(fn Handler[S, platform.CursorEntered]) *Loop[S] {
	l.slots[platform.KindCursorEntered] = erase(fn)
	return l
}

// OnCursorLeft registers the cursor leave callback.
func (l *Loop[S]) OnCursorLeft(fn Handler[S, platform.CursorLeft]) *Loop[S] {
	l.slots[platform.KindCursorLeft] = erase(fn)
	return l
}

// OnMouseInput registers the mouse button callback.
func (l *Loop[S]) OnMouseInput(fn Handler[S, platform.MouseInput]) *Loop[S] {
	l.slots[platform.KindMouseInput] = erase(fn)
	return l
}

// OnMouseWheel registers the scroll callback.
func (l *Loop[S]) OnMouseWheel(fn Handler[S, platform.MouseWheel]) *Loop[S] {
	l.slots[platform.KindMouseWheel] = erase(fn)
	return l
}

// OnTouchpadPressure registers the force touch callback.
func (l *Loop[S]) OnTouchpadPressure(fn Handler[S, platform.TouchpadPressure]) *Loop[S] {
	l.slots[platform.KindTouchpadPressure] = erase(fn)
	return l
}

// OnAxisMotion registers the device axis callback.
func (l *Loop[S]) OnAxisMotion(fn Handler[S, platform.AxisMotion]) *Loop[S] {
	l.slots[platform.KindAxisMotion] = erase(fn)
	return l
}

// OnDeviceButton registers the raw device button callback.
func (l *Loop[S]) OnDeviceButton(fn Handler[S, platform.DeviceButton]) *Loop[S] {
	l.slots[platform.KindDeviceButton] = erase(fn)
	return l
}

// OnDeviceMotion registers the raw pointer motion callback.
func (l *Loop[S]) OnDeviceMotion(fn Handler[S, platform.DeviceMotion]) *Loop[S] {
	l.slots[platform.KindDeviceMotion] = erase(fn)
	return l
}

// OnScaleFactorChanged registers the content scale callback. It runs
// after the surface has been reconfigured.
func (l *Loop[S]) OnScaleFactorChanged(fn Handler[S, platform.ScaleFactorChanged]) *Loop[S] {
	l.slots[platform.KindScaleFactorChanged] = erase(fn)
	return l
}

// OnFocused registers the focus callback.
func (l *Loop[S]) OnFocused(fn Handler[S, platform.Focused]) *Loop[S] {
	l.slots[platform.KindFocused] = erase(fn)
	return l
}

// OnAny registers a callback that observes every event before its typed
// callback runs. Its directive is ignored unless it is Exit.
func (l *Loop[S]) OnAny(fn Handler[S, platform.Event]) *Loop[S] {
	l.all = erase(fn)
	return l
}
