// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// ColorTarget is a drawable resource plus the viewport to render into.
//
// A ColorTarget is either the presentation surface's current frame or an
// intermediate supersampled buffer. It is valid only for the frame that
// acquired it; render steps must not retain it past their Render call.
//
// Targets support CPU access (Pixels) or GPU access (TextureView).
// The executor that consumes the recorded commands picks the access method.
type ColorTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Viewport returns the region render steps may draw into.
	// It always lies within (0, 0, Width, Height).
	Viewport() image.Rectangle

	// TextureView returns the GPU texture view for this target.
	// Returns nil for CPU-only targets.
	TextureView() TextureView

	// Pixels returns direct access to RGBA8 pixel data.
	// Returns nil for GPU-only targets.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// Bounds returns the full pixel rectangle of t.
func Bounds(t ColorTarget) image.Rectangle {
	return image.Rect(0, 0, t.Width(), t.Height())
}

// clampViewport restricts r to the pixel bounds of a w×h target.
func clampViewport(r image.Rectangle, w, h int) image.Rectangle {
	return r.Canon().Intersect(image.Rect(0, 0, w, h))
}

// Sub returns a view of t whose viewport is r intersected with t's own
// viewport. The result shares storage with t.
func Sub(t ColorTarget, r image.Rectangle) ColorTarget {
	if s, ok := t.(*subTarget); ok {
		t = s.ColorTarget
		r = r.Intersect(s.viewport)
	}
	return &subTarget{ColorTarget: t, viewport: r.Canon().Intersect(t.Viewport())}
}

type subTarget struct {
	ColorTarget
	viewport image.Rectangle
}

func (s *subTarget) Viewport() image.Rectangle { return s.viewport }

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// This target backs the software surface backend and provides direct pixel
// access for tests and readback.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	enc := render.NewEncoder()
//	render.Clear{Color: color.White}.Render(ctx, enc, target)
//	render.NewSoftwareRenderer().Execute(enc.Commands())
//	img := target.Image()
type PixmapTarget struct {
	img      *image.RGBA
	viewport image.Rectangle
}

// NewPixmapTarget creates a new CPU-backed render target with a viewport
// covering the whole image.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return NewPixmapTargetFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img, viewport: image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy())}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Viewport returns the drawable region.
func (t *PixmapTarget) Viewport() image.Rectangle {
	return t.viewport
}

// SetViewport sets the drawable region, clamped to the image bounds.
func (t *PixmapTarget) SetViewport(r image.Rectangle) {
	t.viewport = clampViewport(r, t.Width(), t.Height())
}

// TextureView returns nil as this is a CPU-only target.
func (t *PixmapTarget) TextureView() TextureView {
	return nil
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// GetPixel returns the color at the given coordinates.
func (t *PixmapTarget) GetPixel(x, y int) color.Color {
	return t.img.At(x, y)
}

// Resize replaces the backing image and resets the viewport to cover it.
// The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
	t.viewport = t.img.Bounds()
}

var _ ColorTarget = (*PixmapTarget)(nil)

// TextureTarget is a GPU texture-backed render target. It wraps either the
// presentation frame or an intermediate offscreen texture.
type TextureTarget struct {
	width    int
	height   int
	format   gputypes.TextureFormat
	view     TextureView
	viewport image.Rectangle
}

// NewTextureTarget wraps a texture view of the given size and format.
func NewTextureTarget(view TextureView, width, height int, format gputypes.TextureFormat) *TextureTarget {
	return &TextureTarget{
		width:    width,
		height:   height,
		format:   format,
		view:     view,
		viewport: image.Rect(0, 0, width, height),
	}
}

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int {
	return t.width
}

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int {
	return t.height
}

// Format returns the pixel format.
func (t *TextureTarget) Format() gputypes.TextureFormat {
	return t.format
}

// Viewport returns the drawable region.
func (t *TextureTarget) Viewport() image.Rectangle {
	return t.viewport
}

// SetViewport sets the drawable region, clamped to the texture size.
func (t *TextureTarget) SetViewport(r image.Rectangle) {
	t.viewport = clampViewport(r, t.width, t.height)
}

// TextureView returns the GPU texture view.
func (t *TextureTarget) TextureView() TextureView {
	return t.view
}

// Pixels returns nil as this is a GPU-only target.
func (t *TextureTarget) Pixels() []byte {
	return nil
}

// Stride returns 0 as this is a GPU-only target.
func (t *TextureTarget) Stride() int {
	return 0
}

// Destroy releases the texture view.
func (t *TextureTarget) Destroy() {
	if t.view != nil {
		t.view.Destroy()
		t.view = nil
	}
}

var _ ColorTarget = (*TextureTarget)(nil)
