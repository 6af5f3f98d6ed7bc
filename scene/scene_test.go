// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/gogpu/winloop/render"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

// recorder is an instrumented node recording calls into a shared log.
type recorder struct {
	name string
	log  *[]string
	box  Box
	err  error

	// parent, if set, is checked to have been resized before the recorder.
	parent     Node
	parentSize Size
}

func (p *recorder) Resize(size Size) {
	if p.parent != nil {
		p.parentSize = p.parent.Box().Size()
	}
	p.box.size = size
	*p.log = append(*p.log, p.name+".resize")
}

func (p *recorder) ScaleFactorChanged(f float64) {
	p.box.scale = f
	*p.log = append(*p.log, p.name+".scale")
}

func (p *recorder) Redraw(*render.Context, *render.Encoder, render.ColorTarget) error {
	*p.log = append(*p.log, p.name+".redraw")
	return p.err
}

func (p *recorder) Box() *Box        { return &p.box }
func (p *recorder) Children() []Node { return nil }

func TestDivResizeOrder(t *testing.T) {
	var log []string
	a := &recorder{name: "A", log: &log}
	b := &recorder{name: "B", log: &log}
	div := NewDiv(a, b)
	a.parent, b.parent = div, div

	size := Size{Width: 640, Height: 480}
	div.Resize(size)

	if want := []string{"A.resize", "B.resize"}; !slices.Equal(log, want) {
		t.Errorf("call order = %v, want %v", log, want)
	}
	if a.parentSize != size || b.parentSize != size {
		t.Errorf("div box seen by children = %v, %v, want %v", a.parentSize, b.parentSize, size)
	}
	if got := div.Box().Size(); got != size {
		t.Errorf("Box().Size() = %v, want %v", got, size)
	}
}

func TestDivScaleFactorOrder(t *testing.T) {
	var log []string
	a := &recorder{name: "A", log: &log}
	b := &recorder{name: "B", log: &log}
	div := NewDiv(a).Append(b)

	div.ScaleFactorChanged(2)

	if want := []string{"A.scale", "B.scale"}; !slices.Equal(log, want) {
		t.Errorf("call order = %v, want %v", log, want)
	}
	if got := div.Box().Scale(); got != 2 {
		t.Errorf("Box().Scale() = %v, want 2", got)
	}
	if got := (&Box{}).Scale(); got != 1 {
		t.Errorf("zero Box Scale() = %v, want 1", got)
	}
}

func TestDivRedrawFailsFast(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	div := NewDiv(
		&recorder{name: "A", log: &log},
		&recorder{name: "B", log: &log, err: boom},
		&recorder{name: "C", log: &log},
	)

	err := div.Redraw(render.NewContext(nil), render.NewEncoder(), render.NewPixmapTarget(10, 10))
	if !errors.Is(err, boom) {
		t.Fatalf("Redraw() error = %v, want %v", err, boom)
	}
	if want := []string{"A.redraw", "B.redraw"}; !slices.Equal(log, want) {
		t.Errorf("call order = %v, want %v", log, want)
	}
}

func TestDivResizesChildrenToResolvedSize(t *testing.T) {
	var log []string
	a := &recorder{name: "A", log: &log}
	b := &recorder{name: "B", log: &log}
	b.box.SetSize(Px(100), Dimension{})
	root := NewDiv(a, b)

	New(root).Resize(Size{Width: 300, Height: 50})

	if got, want := b.box.Size(), (Size{Width: 100, Height: 50}); got != want {
		t.Errorf("B size = %v, want %v", got, want)
	}
	if got, want := a.box.Size(), (Size{Width: 200, Height: 50}); got != want {
		t.Errorf("A size = %v, want %v", got, want)
	}
}

func TestFlexLayout(t *testing.T) {
	tests := []struct {
		name  string
		build func() (Node, []Node)
		size  Size
		want  []image.Rectangle
	}{
		{
			name: "row fixed and grow",
			build: func() (Node, []Node) {
				a, b := NewDiv(), NewDiv()
				a.Box().SetSize(Px(100), Dimension{})
				return NewDiv(a, b), []Node{a, b}
			},
			size: Size{Width: 300, Height: 100},
			want: []image.Rectangle{image.Rect(0, 0, 100, 100), image.Rect(100, 0, 300, 100)},
		},
		{
			name: "column with gap and padding",
			build: func() (Node, []Node) {
				a, b := NewDiv(), NewDiv()
				root := NewDiv(a, b)
				root.Box().SetDirection(Column)
				root.Box().Gap = 10
				root.Box().Padding = All(5)
				return root, []Node{a, b}
			},
			size: Size{Width: 100, Height: 120},
			want: []image.Rectangle{image.Rect(5, 5, 95, 55), image.Rect(5, 65, 95, 115)},
		},
		{
			name: "grow weights",
			build: func() (Node, []Node) {
				a, b := NewDiv(), NewDiv()
				a.Box().SetGrow(1)
				b.Box().SetGrow(3)
				return NewDiv(a, b), []Node{a, b}
			},
			size: Size{Width: 400, Height: 10},
			want: []image.Rectangle{image.Rect(0, 0, 100, 10), image.Rect(100, 0, 400, 10)},
		},
		{
			name: "percent and cross size",
			build: func() (Node, []Node) {
				a := NewDiv()
				a.Box().SetSize(Pct(25), Px(20))
				return NewDiv(a), []Node{a}
			},
			size: Size{Width: 200, Height: 100},
			want: []image.Rectangle{image.Rect(0, 0, 50, 20)},
		},
		{
			name: "absolute and relative",
			build: func() (Node, []Node) {
				a, b := NewDiv(), NewDiv()
				a.Box().SetPosition(Position{Type: Absolute, Left: 10, Top: 20})
				a.Box().SetSize(Px(30), Px(40))
				b.Box().SetPosition(Position{Type: Relative, Left: 5})
				return NewDiv(a, b), []Node{a, b}
			},
			size: Size{Width: 100, Height: 100},
			want: []image.Rectangle{image.Rect(10, 20, 40, 60), image.Rect(5, 0, 105, 100)},
		},
		{
			name: "nested",
			build: func() (Node, []Node) {
				leaf := NewDiv()
				inner := NewDiv(leaf)
				inner.Box().Padding = Insets{Left: 10}
				return NewDiv(NewDiv(), inner), []Node{inner, leaf}
			},
			size: Size{Width: 200, Height: 50},
			want: []image.Rectangle{image.Rect(100, 0, 200, 50), image.Rect(110, 0, 200, 50)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, nodes := tt.build()
			rects := FlexLayout{}.Compute(root, tt.size)
			if got, want := rects[root], image.Rect(0, 0, tt.size.Width, tt.size.Height); got != want {
				t.Errorf("root = %v, want %v", got, want)
			}
			for i, n := range nodes {
				if got := rects[n]; got != tt.want[i] {
					t.Errorf("node %d = %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestApplyStoresResolved(t *testing.T) {
	child := NewDiv()
	root := NewDiv(child)
	Apply(root, map[Node]image.Rectangle{child: image.Rect(1, 2, 3, 4)})
	if got := child.Box().Resolved(); got != image.Rect(1, 2, 3, 4) {
		t.Errorf("Resolved() = %v, want (1,2)-(3,4)", got)
	}
	if got := root.Box().Resolved(); !got.Empty() {
		t.Errorf("root Resolved() = %v, want empty", got)
	}
}

func twoColumns() *Scene {
	left, right := NewDiv(), NewDiv()
	left.Background, right.Background = red, blue
	return New(NewDiv(left, right))
}

func renderScene(t *testing.T, sc *Scene, ctx *render.Context, target *render.PixmapTarget) {
	t.Helper()
	enc := render.NewEncoder()
	if err := sc.Render(ctx, enc, target); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := render.NewSoftwareRenderer().Execute(enc.Commands()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestSceneDrawsIntoViewports(t *testing.T) {
	sc := twoColumns()
	sc.Resize(Size{Width: 100, Height: 50})
	target := render.NewPixmapTarget(100, 50)
	renderScene(t, sc, render.NewContext(nil), target)

	img := target.Image()
	if got := img.RGBAAt(25, 25); got != red {
		t.Errorf("left pixel = %v, want %v", got, red)
	}
	if got := img.RGBAAt(75, 25); got != blue {
		t.Errorf("right pixel = %v, want %v", got, blue)
	}
}

func TestSceneViewportsFollowSupersampling(t *testing.T) {
	sc := twoColumns()
	sc.Resize(Size{Width: 100, Height: 50})
	target := render.NewPixmapTarget(200, 100)
	ctx := render.NewContext(nil)
	ctx.Transform = render.Scale(2, 2)
	ctx.Scale = 2
	renderScene(t, sc, ctx, target)

	img := target.Image()
	if got := img.RGBAAt(99, 50); got != red {
		t.Errorf("pixel (99,50) = %v, want %v", got, red)
	}
	if got := img.RGBAAt(100, 50); got != blue {
		t.Errorf("pixel (100,50) = %v, want %v", got, blue)
	}
	if got := img.RGBAAt(199, 99); got != blue {
		t.Errorf("pixel (199,99) = %v, want %v", got, blue)
	}
}

func TestShapeCircleFollowsResolvedSize(t *testing.T) {
	circle := &Circle{Color: red}
	shape := NewShape(circle)
	sc := New(NewDiv(NewDiv(), shape))
	sc.Resize(Size{Width: 200, Height: 100})

	if got, want := circle.size, (Size{Width: 100, Height: 100}); got != want {
		t.Fatalf("circle size = %v, want %v", got, want)
	}

	target := render.NewPixmapTarget(200, 100)
	renderScene(t, sc, render.NewContext(nil), target)
	img := target.Image()
	if got := img.RGBAAt(150, 50); got != red {
		t.Errorf("circle center = %v, want %v", got, red)
	}
	if got := img.RGBAAt(50, 50); got == red {
		t.Errorf("left half pixel = %v, want untouched", got)
	}
	if got := img.RGBAAt(101, 1); got == red {
		t.Errorf("corner of shape = %v, want outside the circle", got)
	}
}

func TestSceneRelayout(t *testing.T) {
	a, b := NewDiv(), NewDiv()
	sc := New(NewDiv(a, b))
	sc.Resize(Size{Width: 100, Height: 10})
	a.Box().SetSize(Px(10), Dimension{})
	sc.Relayout()
	if got := a.Box().Resolved(); got != image.Rect(0, 0, 10, 10) {
		t.Errorf("Resolved() = %v, want (0,0)-(10,10)", got)
	}
	if got := sc.Size(); got != (Size{Width: 100, Height: 10}) {
		t.Errorf("Size() = %v, want 100x10", got)
	}
}

func TestDimensionString(t *testing.T) {
	tests := []struct {
		d    Dimension
		want string
	}{
		{Dimension{}, "auto"},
		{Px(12), "12px"},
		{Pct(50), "50%"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
