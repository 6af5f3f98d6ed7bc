// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
)

// Op is the type of a recorded command.
type Op uint8

const (
	// OpClear fills the viewport with a solid color.
	OpClear Op = iota
	// OpCircle fills an anti-aliased circle.
	OpCircle
	// OpImage draws an image scaled into a destination rectangle.
	OpImage
	// OpResolve downsamples a whole source target into the destination
	// target. It is recorded by the surface when supersampling.
	OpResolve
)

// String returns the command name.
func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpCircle:
		return "circle"
	case OpImage:
		return "image"
	case OpResolve:
		return "resolve"
	default:
		return "unknown"
	}
}

// Command is a single recorded drawing operation bound to the target and
// viewport it was recorded against.
type Command struct {
	Op       Op
	Target   ColorTarget
	Viewport image.Rectangle

	// Color is premultiplied for OpClear and OpCircle.
	Color color.RGBA

	// Center and Radius are in target pixels for OpCircle.
	Center Point
	Radius float64

	// Image and Dst describe an OpImage draw; Dst is in target pixels.
	Image image.Image
	Dst   image.Rectangle

	// Source is the supersampled target read by OpResolve.
	Source ColorTarget
}

// Encoder accumulates the commands of one frame.
//
// Widgets record into an Encoder; the surface backend executes the list
// when the frame is presented. Commands reference their targets, so an
// Encoder must be reset before the next frame's targets are acquired.
type Encoder struct {
	commands []Command
}

// NewEncoder creates an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{commands: make([]Command, 0, 16)}
}

// Clear records a fill of t's viewport with c.
func (e *Encoder) Clear(t ColorTarget, c color.Color) {
	e.commands = append(e.commands, Command{
		Op:       OpClear,
		Target:   t,
		Viewport: t.Viewport(),
		Color:    toRGBA(c),
	})
}

// FillCircle records a circle centered at center with the given radius,
// both in target pixels. Non-positive radii record nothing.
func (e *Encoder) FillCircle(t ColorTarget, center Point, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	e.commands = append(e.commands, Command{
		Op:       OpCircle,
		Target:   t,
		Viewport: t.Viewport(),
		Color:    toRGBA(c),
		Center:   center,
		Radius:   radius,
	})
}

// DrawImage records img scaled into dst, clipped to t's viewport.
func (e *Encoder) DrawImage(t ColorTarget, img image.Image, dst image.Rectangle) {
	if img == nil || dst.Empty() {
		return
	}
	e.commands = append(e.commands, Command{
		Op:       OpImage,
		Target:   t,
		Viewport: t.Viewport(),
		Image:    img,
		Dst:      dst,
	})
}

// Resolve records a filtered downsample of src into dst's full bounds.
func (e *Encoder) Resolve(dst, src ColorTarget) {
	e.commands = append(e.commands, Command{
		Op:       OpResolve,
		Target:   dst,
		Viewport: Bounds(dst),
		Source:   src,
		Dst:      Bounds(dst),
	})
}

// Commands returns the recorded commands in recording order.
// The returned slice should not be modified by the caller.
func (e *Encoder) Commands() []Command {
	return e.commands
}

// Len returns the number of recorded commands.
func (e *Encoder) Len() int {
	return len(e.commands)
}

// Reset drops all commands and target references for reuse.
func (e *Encoder) Reset() {
	clear(e.commands)
	e.commands = e.commands[:0]
}

// toRGBA converts c to 8-bit premultiplied RGBA.
func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	r, g, b, a := c.RGBA()
	//nolint:gosec // G115: 16-bit channels shifted into 8 bits
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
