// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"image"
	"math"
)

// Layout resolves a rectangle for every node of a tree laid out inside
// constraints. Rectangles are in scene coordinates, with the origin at the
// top-left of the surface.
type Layout interface {
	Compute(root Node, constraints Size) map[Node]image.Rectangle
}

// Apply stores the rectangles computed by a Layout in the boxes of the
// tree. Nodes missing from rects are left unresolved.
func Apply(root Node, rects map[Node]image.Rectangle) {
	root.Box().resolved = rects[root]
	for _, c := range root.Children() {
		Apply(c, rects)
	}
}

// FlexLayout is a single-line flexbox.
//
// Children are placed along the container's Direction inside its padding,
// separated by Gap. Fixed and percentage sizes are honored first; the free
// space left is shared among children in proportion to Grow, where an
// auto-sized child grows with a weight of at least one. Across the main
// axis auto-sized children stretch. Absolute children leave the flow.
type FlexLayout struct{}

var _ Layout = FlexLayout{}

// Compute implements Layout.
func (FlexLayout) Compute(root Node, constraints Size) map[Node]image.Rectangle {
	out := make(map[Node]image.Rectangle)
	b := root.Box()
	w := lengthOr(b.Width, constraints.Width, float64(constraints.Width))
	h := lengthOr(b.Height, constraints.Height, float64(constraints.Height))
	x, y := round(b.Position.Left), round(b.Position.Top)
	flex(root, image.Rect(x, y, x+round(w), y+round(h)), out)
	return out
}

func flex(n Node, r image.Rectangle, out map[Node]image.Rectangle) {
	out[n] = r
	children := n.Children()
	if len(children) == 0 {
		return
	}
	b := n.Box()
	inner := b.Padding.inset(r)

	flow := make([]Node, 0, len(children))
	for _, c := range children {
		if c.Box().Position.Type == Absolute {
			flex(c, absolute(c.Box(), inner), out)
			continue
		}
		flow = append(flow, c)
	}
	if len(flow) == 0 {
		return
	}

	row := b.Direction == Row
	mainLen, crossLen, mainStart := inner.Dx(), inner.Dy(), inner.Min.X
	if !row {
		mainLen, crossLen, mainStart = inner.Dy(), inner.Dx(), inner.Min.Y
	}

	bases := make([]float64, len(flow))
	weights := make([]float64, len(flow))
	var fixed, grow float64
	for i, c := range flow {
		cb := c.Box()
		main := cb.Width
		if !row {
			main = cb.Height
		}
		v, auto := main.resolve(mainLen)
		if auto {
			weights[i] = math.Max(cb.Grow, 1)
		} else {
			bases[i] = v
			weights[i] = cb.Grow
		}
		fixed += bases[i]
		grow += weights[i]
	}
	free := math.Max(float64(mainLen)-b.Gap*float64(len(flow)-1)-fixed, 0)

	pos := float64(mainStart)
	for i, c := range flow {
		cb := c.Box()
		size := bases[i]
		if grow > 0 {
			size += free * weights[i] / grow
		}
		cross := cb.Height
		if !row {
			cross = cb.Width
		}
		crossSize := round(math.Min(lengthOr(cross, crossLen, float64(crossLen)), float64(crossLen)))

		start, end := round(pos), round(pos+size)
		var cr image.Rectangle
		if row {
			cr = image.Rect(start, inner.Min.Y, end, inner.Min.Y+crossSize)
		} else {
			cr = image.Rect(inner.Min.X, start, inner.Min.X+crossSize, end)
		}
		cr = cr.Add(image.Pt(round(cb.Position.Left), round(cb.Position.Top)))
		flex(c, cr, out)
		pos += size + b.Gap
	}
}

// absolute places an out-of-flow node at its offsets from the parent's
// content box. Auto sizes extend to the content box edge.
func absolute(b *Box, inner image.Rectangle) image.Rectangle {
	left, top := round(b.Position.Left), round(b.Position.Top)
	w := lengthOr(b.Width, inner.Dx(), float64(inner.Dx()-left))
	h := lengthOr(b.Height, inner.Dy(), float64(inner.Dy()-top))
	x, y := inner.Min.X+left, inner.Min.Y+top
	return image.Rect(x, y, x+round(math.Max(w, 0)), y+round(math.Max(h, 0)))
}

// lengthOr resolves d against parent, returning auto when d is Auto.
func lengthOr(d Dimension, parent int, auto float64) float64 {
	if v, isAuto := d.resolve(parent); !isAuto {
		return v
	}
	return auto
}
