// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"fmt"
	"image"
	"math"
)

// Size is a size in surface pixels.
type Size struct {
	Width, Height int
}

// Pt returns the size as an image.Point.
func (s Size) Pt() image.Point { return image.Pt(s.Width, s.Height) }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Unit selects how a Dimension is resolved.
type Unit uint8

const (
	// Auto lets the layout decide. In the flex direction an auto node
	// takes a share of the free space; across it, the node stretches.
	Auto Unit = iota
	// Points is an absolute length in pixels.
	Points
	// Percent is a fraction of the parent's content box, in percent.
	Percent
)

// Dimension is a length specification.
type Dimension struct {
	Unit  Unit
	Value float64
}

// Px returns a fixed dimension.
func Px(v float64) Dimension { return Dimension{Unit: Points, Value: v} }

// Pct returns a dimension relative to the parent.
func Pct(v float64) Dimension { return Dimension{Unit: Percent, Value: v} }

// resolve returns the length of d inside a parent of the given length and
// whether d is Auto.
func (d Dimension) resolve(parent int) (float64, bool) {
	switch d.Unit {
	case Points:
		return math.Max(d.Value, 0), false
	case Percent:
		return math.Max(d.Value*float64(parent)/100, 0), false
	default:
		return 0, true
	}
}

func (d Dimension) String() string {
	switch d.Unit {
	case Points:
		return fmt.Sprintf("%gpx", d.Value)
	case Percent:
		return fmt.Sprintf("%g%%", d.Value)
	default:
		return "auto"
	}
}

// PositionType selects how Position offsets apply.
type PositionType uint8

const (
	// Relative nodes take part in the flex flow and are shifted by the
	// offsets afterwards.
	Relative PositionType = iota
	// Absolute nodes leave the flow and are placed at the offsets from
	// the parent's content box.
	Absolute
)

// Position is a node's placement.
type Position struct {
	Type      PositionType
	Left, Top float64
}

// Direction is the main axis of a flex container.
type Direction uint8

const (
	Row Direction = iota
	Column
)

// Insets are per-side paddings.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// All returns equal insets on every side.
func All(v float64) Insets {
	return Insets{Left: v, Top: v, Right: v, Bottom: v}
}

// inset shrinks r by the insets. The result is never inverted.
func (in Insets) inset(r image.Rectangle) image.Rectangle {
	out := image.Rect(
		r.Min.X+round(in.Left), r.Min.Y+round(in.Top),
		r.Max.X-round(in.Right), r.Max.Y-round(in.Bottom),
	)
	if out.Max.X < out.Min.X {
		out.Max.X = out.Min.X
	}
	if out.Max.Y < out.Min.Y {
		out.Max.Y = out.Min.Y
	}
	return out
}

// Box is the layout state of a node: the style set by the application and
// what the scene last told the node.
type Box struct {
	Width, Height Dimension
	Position      Position
	Direction     Direction
	Gap           float64
	Padding       Insets
	Grow          float64

	size     Size
	scale    float64
	resolved image.Rectangle
}

// SetSize sets the width and height specifications.
func (b *Box) SetSize(width, height Dimension) {
	b.Width, b.Height = width, height
}

// SetPosition sets the placement.
func (b *Box) SetPosition(p Position) {
	b.Position = p
}

// SetGrow sets the flex grow factor.
func (b *Box) SetGrow(g float64) {
	b.Grow = math.Max(g, 0)
}

// SetDirection sets the main axis for children.
func (b *Box) SetDirection(d Direction) {
	b.Direction = d
}

// Size returns the size from the last Resize.
func (b *Box) Size() Size { return b.size }

// Scale returns the factor from the last ScaleFactorChanged, or 1.
func (b *Box) Scale() float64 {
	if b.scale == 0 {
		return 1
	}
	return b.scale
}

// Resolved returns the rectangle the layout assigned to the node, in
// scene coordinates. It is empty until the node is laid out.
func (b *Box) Resolved() image.Rectangle { return b.resolved }

func round(v float64) int { return int(math.Round(v)) }
