// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image/color"

	"github.com/gogpu/winloop"
)

// Context carries the read-only inputs of a render step: the transform
// from widget space to target pixels and the device that owns the frame.
type Context struct {
	// Transform maps widget coordinates to target pixels. Under
	// supersampling it includes the supersample scale.
	Transform Matrix

	// Device gives access to the GPU device and queue. It is a
	// CPUDevice on the software backend.
	Device DeviceHandle

	// Scale is the supersample factor of the frame.
	Scale float64
}

// NewContext returns a context with the identity transform.
func NewContext(device DeviceHandle) *Context {
	if device == nil {
		device = CPUDevice{}
	}
	return &Context{Transform: Identity(), Device: device, Scale: 1}
}

// WithTransform returns a copy of c whose transform is c.Transform * m.
func (c *Context) WithTransform(m Matrix) *Context {
	cp := *c
	cp.Transform = c.Transform.Multiply(m)
	return &cp
}

// Widget is anything that can render into a color target.
//
// Render records commands into enc for target. Implementations must not
// retain target beyond the call. A device-level failure is reported as an
// error wrapping winloop.ErrRender.
type Widget interface {
	Render(ctx *Context, enc *Encoder, target ColorTarget) error
}

// WidgetFunc adapts a function to the Widget interface.
type WidgetFunc func(ctx *Context, enc *Encoder, target ColorTarget) error

// Render calls f.
func (f WidgetFunc) Render(ctx *Context, enc *Encoder, target ColorTarget) error {
	return f(ctx, enc, target)
}

// Steps renders widgets in order and stops at the first failure.
type Steps []Widget

// Render implements Widget.
func (s Steps) Render(ctx *Context, enc *Encoder, target ColorTarget) error {
	for i, w := range s {
		if err := w.Render(ctx, enc, target); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// errNilTarget is returned by the built-in widgets when asked to render
// without a target.
var errNilTarget = fmt.Errorf("%w: nil target", winloop.ErrRender)

// Clear fills the target's viewport with a constant color.
type Clear struct {
	Color color.Color
}

// Render implements Widget.
func (c Clear) Render(_ *Context, enc *Encoder, target ColorTarget) error {
	if target == nil {
		return errNilTarget
	}
	enc.Clear(target, c.Color)
	return nil
}

// Circle draws a filled circle. Center and Radius are in widget space and
// are mapped through the context transform.
type Circle struct {
	Center Point
	Radius float64
	Color  color.Color
}

// Render implements Widget.
func (c Circle) Render(ctx *Context, enc *Encoder, target ColorTarget) error {
	if target == nil {
		return errNilTarget
	}
	m := Identity()
	if ctx != nil {
		m = ctx.Transform
	}
	enc.FillCircle(target, m.TransformPoint(c.Center), c.Radius*m.ScaleFactor(), c.Color)
	return nil
}

var (
	_ Widget = Clear{}
	_ Widget = Circle{}
	_ Widget = Steps(nil)
	_ Widget = WidgetFunc(nil)
)
