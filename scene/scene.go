// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene is a retained tree of render nodes laid out with a flex
// box model.
//
// A tree is built from Div containers and Shape leaves. Each node carries
// a Box with its size, position and flex properties. A Scene owns the root
// and a Layout; on Resize it computes a rectangle for every node, stores
// them in the boxes and resizes the tree. Redraw then renders every node
// into a sub-target clipped to its rectangle.
//
//	root := scene.NewDiv(
//	    scene.NewShape(&scene.Circle{Color: colornames.Red}),
//	    scene.NewShape(&scene.Circle{Color: colornames.Blue}),
//	)
//	root.Box().Gap = 8
//	sc := scene.New(root)
//	sc.Resize(scene.Size{Width: 800, Height: 600})
//	err := surf.Redraw(ctx, render.Clear{Color: color.White}, sc)
package scene

import (
	"github.com/gogpu/winloop/render"
)

// Scene is a laid-out tree. It implements render.Widget.
type Scene struct {
	root   Node
	layout Layout
	size   Size
}

var _ render.Widget = (*Scene)(nil)

// New returns a scene laid out with FlexLayout.
func New(root Node) *Scene {
	return NewWithLayout(root, FlexLayout{})
}

// NewWithLayout returns a scene laid out by l.
func NewWithLayout(root Node, l Layout) *Scene {
	if l == nil {
		l = FlexLayout{}
	}
	return &Scene{root: root, layout: l}
}

// Root returns the root node.
func (s *Scene) Root() Node { return s.root }

// Size returns the size of the last Resize.
func (s *Scene) Size() Size { return s.size }

// Resize lays the tree out inside size and then resizes it.
func (s *Scene) Resize(size Size) {
	s.size = size
	Apply(s.root, s.layout.Compute(s.root, size))
	s.root.Resize(size)
}

// Relayout recomputes the layout at the current size, for use after
// changing box properties.
func (s *Scene) Relayout() {
	s.Resize(s.size)
}

// ScaleFactorChanged forwards factor to the tree.
func (s *Scene) ScaleFactorChanged(factor float64) {
	s.root.ScaleFactorChanged(factor)
}

// Render implements render.Widget.
func (s *Scene) Render(ctx *render.Context, enc *render.Encoder, target render.ColorTarget) error {
	if ctx == nil {
		ctx = render.NewContext(nil)
	}
	return s.root.Redraw(ctx, enc, render.Sub(target, viewport(ctx, s.root.Box().Resolved())))
}
