// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/internal/workpool"
)

// kappa is the cubic Bézier control distance for a quarter circle.
const kappa = 0.5522847498307936

// resolveBandRows is the smallest band a resolve is split into.
const resolveBandRows = 64

// SoftwareRenderer executes commands on CPU targets.
//
// Circles are rasterized with golang.org/x/image/vector (anti-aliased,
// non-zero fill); images and resolves use golang.org/x/image/draw scalers.
// Every command is clipped to the viewport it was recorded with. Resolves
// of large frames are split into row bands scaled in parallel.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	enc := render.NewEncoder()
//	render.Circle{Center: render.Pt(400, 300), Radius: 100, Color: color.Black}.
//	    Render(render.NewContext(nil), enc, target)
//	err := renderer.Execute(enc.Commands())
type SoftwareRenderer struct {
	raster *vector.Rasterizer
	pool   *workpool.Pool

	// Resampler is used for OpImage and OpResolve.
	Resampler draw.Interpolator
}

// NewSoftwareRenderer creates a new CPU-based executor.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{
		raster:    vector.NewRasterizer(0, 0),
		pool:      workpool.Shared(),
		Resampler: draw.ApproxBiLinear,
	}
}

// Execute implements Executor.
func (r *SoftwareRenderer) Execute(cmds []Command) error {
	for i := range cmds {
		if err := r.execute(&cmds[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SoftwareRenderer) execute(cmd *Command) error {
	dst, err := rgbaView(cmd.Target)
	if err != nil {
		return err
	}
	vp := cmd.Viewport.Intersect(dst.Bounds())
	if vp.Empty() {
		return nil
	}
	clip, _ := dst.SubImage(vp).(*image.RGBA)

	switch cmd.Op {
	case OpClear:
		draw.Draw(clip, vp, image.NewUniform(cmd.Color), image.Point{}, draw.Src)

	case OpCircle:
		r.fillCircle(clip, vp, cmd)

	case OpImage:
		r.Resampler.Scale(clip, cmd.Dst, cmd.Image, cmd.Image.Bounds(), draw.Over, nil)

	case OpResolve:
		src, err := rgbaView(cmd.Source)
		if err != nil {
			return err
		}
		r.resolve(clip, cmd.Dst, src)

	default:
		return fmt.Errorf("%w: unknown command %d", winloop.ErrRender, cmd.Op)
	}
	return nil
}

// fillCircle rasterizes the circle as four cubic arcs into a mask sized to
// the viewport, then composites the color over the clipped destination.
func (r *SoftwareRenderer) fillCircle(clip *image.RGBA, vp image.Rectangle, cmd *Command) {
	r.raster.Reset(vp.Dx(), vp.Dy())
	r.raster.DrawOp = draw.Over

	cx := float32(cmd.Center.X - float64(vp.Min.X))
	cy := float32(cmd.Center.Y - float64(vp.Min.Y))
	rad := float32(cmd.Radius)
	k := rad * kappa

	r.raster.MoveTo(cx+rad, cy)
	r.raster.CubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
	r.raster.CubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
	r.raster.CubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
	r.raster.CubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	r.raster.ClosePath()

	r.raster.Draw(clip, vp, image.NewUniform(cmd.Color), image.Point{})
}

// resolve scales src onto dr, clipped to dst. Each band scales the whole
// source mapping clipped to its rows, so the result does not depend on
// the split.
func (r *SoftwareRenderer) resolve(dst *image.RGBA, dr image.Rectangle, src *image.RGBA) {
	bands := workpool.Bands(dst.Bounds(), r.pool.Workers(), resolveBandRows)
	if len(bands) < 2 {
		r.Resampler.Scale(dst, dr, src, src.Bounds(), draw.Src, nil)
		return
	}
	work := make([]func(), len(bands))
	for i, b := range bands {
		band, _ := dst.SubImage(b).(*image.RGBA)
		work[i] = func() {
			r.Resampler.Scale(band, dr, src, src.Bounds(), draw.Src, nil)
		}
	}
	r.pool.Run(work)
}

// Capabilities implements Executor.
func (r *SoftwareRenderer) Capabilities() Capabilities {
	return Capabilities{
		IsGPU:                false,
		SupportsAntialiasing: true,
		SupportsImages:       true,
	}
}

// rgbaView wraps a CPU target's pixels as an *image.RGBA without copying.
func rgbaView(t ColorTarget) (*image.RGBA, error) {
	if t == nil {
		return nil, errNilTarget
	}
	if pm, ok := t.(*PixmapTarget); ok {
		return pm.Image(), nil
	}
	if s, ok := t.(*subTarget); ok {
		return rgbaView(s.ColorTarget)
	}
	pix := t.Pixels()
	if pix == nil {
		return nil, fmt.Errorf("%w: target does not support CPU rendering", winloop.ErrRender)
	}
	return &image.RGBA{Pix: pix, Stride: t.Stride(), Rect: image.Rect(0, 0, t.Width(), t.Height())}, nil
}

var _ Executor = (*SoftwareRenderer)(nil)
