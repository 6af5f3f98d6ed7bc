// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Kind identifies an event category.
type Kind uint8

// Event categories.
const (
	KindCloseRequested Kind = iota
	KindKeyboardInput
	KindResized
	KindRedrawRequested
	KindCursorMoved
	KindCursorEntered
	KindCursorLeft
	KindMouseInput
	KindMouseWheel
	KindTouchpadPressure
	KindAxisMotion
	KindDeviceButton
	KindDeviceMotion
	KindScaleFactorChanged
	KindFocused

	// KindCount is the number of categories.
	KindCount
)

var kindNames = [KindCount]string{
	"CloseRequested",
	"KeyboardInput",
	"Resized",
	"RedrawRequested",
	"CursorMoved",
	"CursorEntered",
	"CursorLeft",
	"MouseInput",
	"MouseWheel",
	"TouchpadPressure",
	"AxisMotion",
	"DeviceButton",
	"DeviceMotion",
	"ScaleFactorChanged",
	"Focused",
}

// String returns the category name.
func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Event is a window or device event. The concrete type is one of the
// structs below; switch on the type or on Kind.
type Event interface {
	Kind() Kind
}

// Action is the state change of a key or button.
type Action uint8

// Actions.
const (
	Release Action = iota
	Press
	Repeat
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case Release:
		return "release"
	case Press:
		return "press"
	case Repeat:
		return "repeat"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// ScrollMode tells how MouseWheel deltas are measured.
type ScrollMode uint8

// Scroll modes.
const (
	// LineDelta deltas count lines or rows (mouse wheels).
	LineDelta ScrollMode = iota
	// PixelDelta deltas are in pixels (touchpads).
	PixelDelta
)

// CloseRequested is sent when the user asks to close the window.
type CloseRequested struct{}

// KeyboardInput is a physical key state change.
type KeyboardInput struct {
	Key      gpucontext.Key
	Scancode int
	Action   Action
	Mods     gpucontext.Modifiers
}

// Resized reports the new framebuffer size in physical pixels.
type Resized struct {
	Width, Height int
}

// RedrawRequested asks the application to draw a frame.
type RedrawRequested struct{}

// CursorMoved reports the cursor position in window coordinates.
type CursorMoved struct {
	X, Y float64
}

// CursorEntered is sent when the cursor enters the window.
type CursorEntered struct{}

// CursorLeft is sent when the cursor leaves the window.
type CursorLeft struct{}

// MouseInput is a mouse button state change.
type MouseInput struct {
	Button gpucontext.MouseButton
	Action Action
	Mods   gpucontext.Modifiers
}

// MouseWheel is a scroll.
type MouseWheel struct {
	DeltaX, DeltaY float64
	Mode           ScrollMode
}

// TouchpadPressure reports force touch pressure in [0, 1] and the click
// stage.
type TouchpadPressure struct {
	Pressure float32
	Stage    int64
}

// AxisMotion reports the value of one axis of an input device such as a
// joystick.
type AxisMotion struct {
	Device int
	Axis   int
	Value  float64
}

// DeviceButton is a raw button change on an input device, independent of
// any window.
type DeviceButton struct {
	Device int
	Button int
	Action Action
}

// DeviceMotion is raw relative pointer motion, independent of any window.
type DeviceMotion struct {
	DeltaX, DeltaY float64
}

// ScaleFactorChanged reports a new content scale, for example after the
// window moved to another monitor.
type ScaleFactorChanged struct {
	Factor float64
}

// Focused reports a keyboard focus change.
type Focused struct {
	Focused bool
}

func (CloseRequested) Kind() Kind     { return KindCloseRequested }
func (KeyboardInput) Kind() Kind      { return KindKeyboardInput }
func (Resized) Kind() Kind            { return KindResized }
func (RedrawRequested) Kind() Kind    { return KindRedrawRequested }
func (CursorMoved) Kind() Kind        { return KindCursorMoved }
func (CursorEntered) Kind() Kind      { return KindCursorEntered }
func (CursorLeft) Kind() Kind         { return KindCursorLeft }
func (MouseInput) Kind() Kind         { return KindMouseInput }
func (MouseWheel) Kind() Kind         { return KindMouseWheel }
func (TouchpadPressure) Kind() Kind   { return KindTouchpadPressure }
func (AxisMotion) Kind() Kind         { return KindAxisMotion }
func (DeviceButton) Kind() Kind       { return KindDeviceButton }
func (DeviceMotion) Kind() Kind       { return KindDeviceMotion }
func (ScaleFactorChanged) Kind() Kind { return KindScaleFactorChanged }
func (Focused) Kind() Kind            { return KindFocused }

// Describe formats an event for logs and the events listing.
func Describe(ev Event) string {
	switch e := ev.(type) {
	case KeyboardInput:
		return fmt.Sprintf("%s key=%d scancode=%d %s mods=%#x", e.Kind(), e.Key, e.Scancode, e.Action, uint8(e.Mods))
	case Resized:
		return fmt.Sprintf("%s %dx%d", e.Kind(), e.Width, e.Height)
	case CursorMoved:
		return fmt.Sprintf("%s (%.1f, %.1f)", e.Kind(), e.X, e.Y)
	case MouseInput:
		return fmt.Sprintf("%s button=%d %s mods=%#x", e.Kind(), e.Button, e.Action, uint8(e.Mods))
	case MouseWheel:
		return fmt.Sprintf("%s (%.2f, %.2f)", e.Kind(), e.DeltaX, e.DeltaY)
	case TouchpadPressure:
		return fmt.Sprintf("%s pressure=%.2f stage=%d", e.Kind(), e.Pressure, e.Stage)
	case AxisMotion:
		return fmt.Sprintf("%s device=%d axis=%d value=%.3f", e.Kind(), e.Device, e.Axis, e.Value)
	case DeviceButton:
		return fmt.Sprintf("%s device=%d button=%d %s", e.Kind(), e.Device, e.Button, e.Action)
	case DeviceMotion:
		return fmt.Sprintf("%s (%.1f, %.1f)", e.Kind(), e.DeltaX, e.DeltaY)
	case ScaleFactorChanged:
		return fmt.Sprintf("%s %.2f", e.Kind(), e.Factor)
	case Focused:
		return fmt.Sprintf("%s %t", e.Kind(), e.Focused)
	case nil:
		return "<nil>"
	default:
		return ev.Kind().String()
	}
}
