// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render_test

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/winloop/render"
)

// ExampleNewSoftwareRenderer records two widgets and executes them on a
// CPU target.
func ExampleNewSoftwareRenderer() {
	target := render.NewPixmapTarget(200, 200)
	enc := render.NewEncoder()
	ctx := render.NewContext(nil)

	steps := render.Steps{
		render.Clear{Color: color.White},
		render.Circle{Center: render.Pt(100, 100), Radius: 50, Color: color.RGBA{B: 255, A: 255}},
	}
	if err := steps.Render(ctx, enc, target); err != nil {
		fmt.Println("render failed:", err)
		return
	}
	if err := render.NewSoftwareRenderer().Execute(enc.Commands()); err != nil {
		fmt.Println("execute failed:", err)
		return
	}

	fmt.Println(enc.Len(), "commands")
	fmt.Println(target.Image().RGBAAt(100, 100))
	// Output:
	// 2 commands
	// {0 0 255 255}
}

// ExampleSub restricts a widget to the right half of a target.
func ExampleSub() {
	target := render.NewPixmapTarget(100, 50)
	right := render.Sub(target, image.Rect(50, 0, 100, 50))

	enc := render.NewEncoder()
	_ = render.Clear{Color: color.Black}.Render(render.NewContext(nil), enc, right)
	_ = render.NewSoftwareRenderer().Execute(enc.Commands())

	fmt.Println(right.Viewport())
	fmt.Println(target.Image().RGBAAt(25, 25).A, target.Image().RGBAAt(75, 25).A)
	// Output:
	// (50,0)-(100,50)
	// 0 255
}
