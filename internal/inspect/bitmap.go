// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inspect

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/winloop"
)

// BitmapInfo is the result of scanning an image file.
type BitmapInfo struct {
	Path   string
	Format string
	Width  int
	Height int

	// Red, Green, Blue and Alpha count the pixels whose channel is non-zero.
	Red, Green, Blue, Alpha int

	// Opaque counts fully opaque pixels.
	Opaque int
}

// Pixels returns the number of pixels.
func (b BitmapInfo) Pixels() int { return b.Width * b.Height }

// Bitmap decodes the image at path and counts its pixels per channel.
// Files whose format has no registered decoder fail with a
// *winloop.ConfigError, the command's file-type error.
func Bitmap(path string) (BitmapInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return BitmapInfo{}, err
	}
	defer f.Close()

	info, err := ScanBitmap(f)
	if errors.Is(err, image.ErrFormat) {
		return BitmapInfo{}, &winloop.ConfigError{Path: path, Err: err}
	}
	if err != nil {
		return BitmapInfo{}, fmt.Errorf("inspect: %s: %w", path, err)
	}
	info.Path = path
	return info, nil
}

// ScanBitmap decodes an image from r and counts its pixels.
func ScanBitmap(r io.Reader) (BitmapInfo, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return BitmapInfo{}, err
	}
	b := img.Bounds()
	info := BitmapInfo{Format: format, Width: b.Dx(), Height: b.Dy()}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R != 0 {
				info.Red++
			}
			if c.G != 0 {
				info.Green++
			}
			if c.B != 0 {
				info.Blue++
			}
			if c.A != 0 {
				info.Alpha++
			}
			if c.A == 0xff {
				info.Opaque++
			}
		}
	}
	return info, nil
}
