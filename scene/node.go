// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/winloop/render"
)

// Node is an element of the scene tree.
//
// Resize and ScaleFactorChanged update the node's own box before they
// recurse into the children in insertion order. Redraw renders the
// children in insertion order into targets clipped to their resolved
// viewports and returns the first error without drawing the rest.
type Node interface {
	Resize(size Size)
	ScaleFactorChanged(factor float64)
	Redraw(ctx *render.Context, enc *render.Encoder, target render.ColorTarget) error
	Box() *Box
	Children() []Node
}

// Resizer is implemented by primitives that follow their shape's size.
type Resizer interface {
	Resize(size Size)
}

// Scaler is implemented by primitives that follow the content scale.
type Scaler interface {
	ScaleFactorChanged(factor float64)
}

// Div is a container node. It draws an optional background over its
// viewport and then its children.
type Div struct {
	box      Box
	children []Node

	// Background fills the div's viewport when set.
	Background color.Color
}

var _ Node = (*Div)(nil)

// NewDiv returns a div holding children.
func NewDiv(children ...Node) *Div {
	return &Div{children: children}
}

// Append adds children after the existing ones.
func (d *Div) Append(children ...Node) *Div {
	d.children = append(d.children, children...)
	return d
}

// Box implements Node.
func (d *Div) Box() *Box { return &d.box }

// Children implements Node.
func (d *Div) Children() []Node { return d.children }

// Resize records size, then resizes each child to its resolved size. A
// child that has not been laid out receives size.
func (d *Div) Resize(size Size) {
	d.box.size = size
	for _, c := range d.children {
		cs := size
		if r := c.Box().Resolved(); !r.Empty() {
			cs = Size{Width: r.Dx(), Height: r.Dy()}
		}
		c.Resize(cs)
	}
}

// ScaleFactorChanged implements Node.
func (d *Div) ScaleFactorChanged(factor float64) {
	d.box.scale = factor
	for _, c := range d.children {
		c.ScaleFactorChanged(factor)
	}
}

// Redraw implements Node. target is expected to be clipped to the div's
// own viewport.
func (d *Div) Redraw(ctx *render.Context, enc *render.Encoder, target render.ColorTarget) error {
	if d.Background != nil {
		if err := (render.Clear{Color: d.Background}).Render(ctx, enc, target); err != nil {
			return err
		}
	}
	for i, c := range d.children {
		sub := render.Sub(target, viewport(ctx, c.Box().Resolved()))
		if err := c.Redraw(ctx, enc, sub); err != nil {
			return fmt.Errorf("scene: child %d: %w", i, err)
		}
	}
	return nil
}

// Shape is a leaf node that draws one primitive in its own coordinate
// space, with the origin at the top-left of its resolved rectangle.
type Shape struct {
	box       Box
	Primitive render.Widget
}

var _ Node = (*Shape)(nil)

// NewShape returns a shape drawing p.
func NewShape(p render.Widget) *Shape {
	return &Shape{Primitive: p}
}

// Box implements Node.
func (s *Shape) Box() *Box { return &s.box }

// Children implements Node. Shapes are leaves.
func (s *Shape) Children() []Node { return nil }

// Resize records size and forwards it to the primitive.
func (s *Shape) Resize(size Size) {
	s.box.size = size
	if r, ok := s.Primitive.(Resizer); ok {
		r.Resize(size)
	}
}

// ScaleFactorChanged records factor and forwards it to the primitive.
func (s *Shape) ScaleFactorChanged(factor float64) {
	s.box.scale = factor
	if sc, ok := s.Primitive.(Scaler); ok {
		sc.ScaleFactorChanged(factor)
	}
}

// Redraw implements Node.
func (s *Shape) Redraw(ctx *render.Context, enc *render.Encoder, target render.ColorTarget) error {
	if s.Primitive == nil {
		return nil
	}
	origin := s.box.resolved.Min
	if ctx == nil {
		ctx = render.NewContext(nil)
	}
	local := ctx.WithTransform(render.Translate(float64(origin.X), float64(origin.Y)))
	return s.Primitive.Render(local, enc, target)
}

// Circle is a primitive that fills the largest circle centered in its
// shape.
type Circle struct {
	Color color.Color

	size Size
}

// Resize implements Resizer.
func (c *Circle) Resize(size Size) { c.size = size }

// Render implements render.Widget.
func (c *Circle) Render(ctx *render.Context, enc *render.Encoder, target render.ColorTarget) error {
	w, h := float64(c.size.Width), float64(c.size.Height)
	return render.Circle{
		Center: render.Pt(w/2, h/2),
		Radius: math.Min(w, h) / 2,
		Color:  c.Color,
	}.Render(ctx, enc, target)
}

// viewport maps a scene rectangle to target pixels through the context
// transform, rounding outwards.
func viewport(ctx *render.Context, r image.Rectangle) image.Rectangle {
	if ctx == nil || ctx.Transform.IsIdentity() {
		return r
	}
	m := ctx.Transform
	p0 := m.TransformPoint(render.Pt(float64(r.Min.X), float64(r.Min.Y)))
	p1 := m.TransformPoint(render.Pt(float64(r.Max.X), float64(r.Max.Y)))
	return image.Rect(
		int(math.Floor(p0.X)), int(math.Floor(p0.Y)),
		int(math.Ceil(p1.X)), int(math.Ceil(p1.Y)),
	)
}
