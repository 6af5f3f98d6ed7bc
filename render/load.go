// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/internal/cache"
)

// imageCacheSize is the soft limit on decoded images kept by Load.
const imageCacheSize = 64

// imageKey identifies one version of an image file.
type imageKey struct {
	path    string
	modTime int64
	size    int64
}

var decodedImages = cache.New[imageKey, *image.RGBA](imageCacheSize)

// Load draws an image resource that it loads once and owns across frames.
//
// The image is decoded on the first Render (or by an explicit Prepare) and
// kept until Release. Rect is the destination in widget space; an empty
// Rect stretches the image over the target's viewport.
type Load struct {
	Path string
	Rect image.Rectangle

	img *image.RGBA
}

// NewLoad returns a Load widget for the image file at path.
func NewLoad(path string, rect image.Rectangle) *Load {
	return &Load{Path: path, Rect: rect}
}

// LoadImage returns a Load widget backed by an in-memory image.
func LoadImage(img image.Image, rect image.Rectangle) *Load {
	return &Load{Rect: rect, img: toRGBAImage(img)}
}

// Prepare decodes the image if it is not loaded yet. Widgets loading the
// same unchanged file share one decoded image.
func (l *Load) Prepare() error {
	if l.img != nil {
		return nil
	}
	fi, err := os.Stat(l.Path)
	if err != nil {
		return fmt.Errorf("%w: load %s: %w", winloop.ErrRender, l.Path, err)
	}
	key := imageKey{path: l.Path, modTime: fi.ModTime().UnixNano(), size: fi.Size()}
	img, err := decodedImages.GetOrLoad(key, func() (*image.RGBA, error) {
		return decodeFile(l.Path)
	})
	if err != nil {
		return err
	}
	l.img = img
	return nil
}

func decodeFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", winloop.ErrRender, path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", winloop.ErrRender, path, err)
	}
	winloop.Logger().Debug("render: image loaded", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return toRGBAImage(img), nil
}

// Image returns the loaded image, or nil before Prepare. The image may be
// shared with other Load widgets and must not be modified.
func (l *Load) Image() *image.RGBA {
	return l.img
}

// Release drops the widget's reference to the image.
func (l *Load) Release() {
	l.img = nil
}

// Render implements Widget.
func (l *Load) Render(ctx *Context, enc *Encoder, target ColorTarget) error {
	if target == nil {
		return errNilTarget
	}
	if err := l.Prepare(); err != nil {
		return err
	}

	dst := target.Viewport()
	if !l.Rect.Empty() {
		m := Identity()
		if ctx != nil {
			m = ctx.Transform
		}
		p0 := m.TransformPoint(Pt(float64(l.Rect.Min.X), float64(l.Rect.Min.Y)))
		p1 := m.TransformPoint(Pt(float64(l.Rect.Max.X), float64(l.Rect.Max.Y)))
		dst = image.Rect(int(p0.X+0.5), int(p0.Y+0.5), int(p1.X+0.5), int(p1.Y+0.5))
	}
	enc.DrawImage(target, l.img, dst)
	return nil
}

// toRGBAImage converts img to a zero-origin *image.RGBA (premultiplied), the
// layout both backends upload and sample.
func toRGBAImage(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

var _ Widget = (*Load)(nil)
