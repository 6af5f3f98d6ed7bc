// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/render"
)

// SoftwareBackend presents CPU pixmaps.
//
// Frames are double-buffered: AcquireFrame hands out the back buffer and
// Present swaps it to the front, where the Presenter hook sees it and
// Front copies it. The resolve pass is executed by render.SoftwareRenderer with a
// golang.org/x/image/draw scaler.
//
// SoftwareBackend is safe for Front to be called from other goroutines;
// every other method belongs to the dispatch loop.
type SoftwareBackend struct {
	render.CPUDevice
	*render.SoftwareRenderer

	// Presenter, if set, receives each presented frame. The image is only
	// valid until the next Present.
	Presenter func(img *image.RGBA)

	mu        sync.Mutex
	cfg       Configuration
	front     *render.PixmapTarget
	back      *render.PixmapTarget
	offscreen *render.PixmapTarget
	acquired  bool
	presented uint64
	released  bool
}

// NewSoftwareBackend creates an unconfigured software backend.
func NewSoftwareBackend(opts Options) *SoftwareBackend {
	winloop.Logger().Debug("surface: software backend created", "supersample", opts.Supersample)
	return &SoftwareBackend{SoftwareRenderer: render.NewSoftwareRenderer()}
}

// Name implements Backend.
func (b *SoftwareBackend) Name() string { return "software" }

// Configure implements Backend. The buffers are reallocated only when the
// size changes.
func (b *SoftwareBackend) Configure(cfg Configuration) error {
	if b.released {
		return fmt.Errorf("%w: software backend released", winloop.ErrInit)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.back == nil || b.back.Width() != cfg.Width || b.back.Height() != cfg.Height {
		b.back = render.NewPixmapTarget(cfg.Width, cfg.Height)
		b.front = render.NewPixmapTarget(cfg.Width, cfg.Height)
	}
	cfg.Format = gputypes.TextureFormatRGBA8Unorm
	b.cfg = cfg
	return nil
}

// AcquireFrame implements Backend.
func (b *SoftwareBackend) AcquireFrame() (render.ColorTarget, error) {
	if b.back == nil {
		return nil, fmt.Errorf("%w: software backend not configured", winloop.ErrSurfaceLost)
	}
	b.acquired = true
	b.back.SetViewport(render.Bounds(b.back))
	return b.back, nil
}

// Offscreen implements Backend.
func (b *SoftwareBackend) Offscreen(width, height int) (render.ColorTarget, error) {
	if width <= 0 || height <= 0 || width > MaxTargetDimension || height > MaxTargetDimension {
		return nil, fmt.Errorf("%w: offscreen %dx%d", winloop.ErrRender, width, height)
	}
	if b.offscreen == nil || b.offscreen.Width() != width || b.offscreen.Height() != height {
		b.offscreen = render.NewPixmapTarget(width, height)
	}
	b.offscreen.SetViewport(render.Bounds(b.offscreen))
	return b.offscreen, nil
}

// Present implements Backend.
func (b *SoftwareBackend) Present(target render.ColorTarget) error {
	if !b.acquired || target != render.ColorTarget(b.back) {
		return fmt.Errorf("%w: present of a target that was not acquired", winloop.ErrRender)
	}
	b.acquired = false

	b.mu.Lock()
	b.front, b.back = b.back, b.front
	b.presented++
	front := b.front.Image()
	b.mu.Unlock()

	if b.Presenter != nil {
		b.Presenter(front)
	}
	return nil
}

// Discard implements Backend.
func (b *SoftwareBackend) Discard(render.ColorTarget) {
	b.acquired = false
}

// Front returns a copy of the last presented frame, or nil before the
// first Present. The copy is owned by the caller.
func (b *SoftwareBackend) Front() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.presented == 0 {
		return nil
	}
	src := b.front.Image()
	img := image.NewRGBA(src.Bounds())
	copy(img.Pix, src.Pix)
	return img
}

// Presented returns the number of frames presented so far.
func (b *SoftwareBackend) Presented() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presented
}

// Report implements Backend.
func (b *SoftwareBackend) Report() AdapterReport {
	info := b.AdapterInfo()
	return AdapterReport{
		Backend: b.Name(),
		Name:    info.Name,
		Vendor:  "winloop",
		Driver:  "golang.org/x/image",
		API:     "cpu",
		Type:    gpucontext.AdapterTypeSoftware,
	}
}

// Release implements Backend.
func (b *SoftwareBackend) Release() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.released = true
	b.offscreen = nil
	b.back = nil
	return nil
}

var _ Backend = (*SoftwareBackend)(nil)
