// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/platform"
	"github.com/gogpu/winloop/render"
)

// Errors.
var (
	// ErrInvalidSize is returned by Resize for a non-positive size, which
	// is what minimized windows report. The surface keeps its previous
	// configuration.
	ErrInvalidSize = errors.New("surface: invalid size")

	// ErrClosed is returned by operations on a closed surface.
	ErrClosed = errors.New("surface: closed")
)

// Surface owns the presentation surface of one window.
//
// A Surface is configured at the window's framebuffer size. With a
// supersample factor F > 1 every frame renders into an intermediate target
// of ceil(W·F) × ceil(H·F) pixels that Present resolves into the
// presentation frame with a linear filter.
//
// Surface implements gpucontext.DeviceProvider so render steps can reach
// the device and queue through their render.Context.
//
// Surfaces are NOT thread-safe. They are driven by the goroutine that runs
// the dispatch loop. Close must be called before the window is destroyed.
type Surface struct {
	backend    Backend
	cfg        Configuration
	configured bool
	closed     bool
	enc        *render.Encoder
	frame      *Frame
}

// New creates a surface for win. Zero Options sizes use the window's
// framebuffer size. Every failure wraps winloop.ErrInit.
func New(win platform.NativeWindow, opts Options) (*Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		if win == nil {
			return nil, fmt.Errorf("%w: surface needs a window or an explicit size", winloop.ErrInit)
		}
		opts.Width, opts.Height = win.Size()
	}
	b, err := Open(opts.Backend, win, opts)
	if err != nil {
		if !errors.Is(err, winloop.ErrInit) {
			err = fmt.Errorf("%w: %w", winloop.ErrInit, err)
		}
		return nil, err
	}
	s, err := NewWithBackend(b, opts)
	if err != nil {
		_ = b.Release()
		return nil, err
	}
	return s, nil
}

// NewWithBackend creates a surface presenting through an already opened
// backend. The surface takes ownership of b.
func NewWithBackend(b Backend, opts Options) (*Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %w: %dx%d", winloop.ErrInit, ErrInvalidSize, opts.Width, opts.Height)
	}
	f := opts.Supersample
	if f < 1 {
		f = 1
	}
	mode := opts.PresentMode
	if mode == gputypes.PresentModeUndefined {
		mode = gputypes.PresentModeFifo
	}
	s := &Surface{
		backend: b,
		cfg: Configuration{
			Width:       opts.Width,
			Height:      opts.Height,
			Format:      opts.Format,
			PresentMode: mode,
			Supersample: f,
		},
		enc: render.NewEncoder(),
	}
	if err := s.cfg.checkScaled(); err != nil {
		return nil, fmt.Errorf("%w: %w", winloop.ErrInit, err)
	}
	if err := s.configure(s.cfg); err != nil {
		return nil, fmt.Errorf("%w: configure: %w", winloop.ErrInit, err)
	}
	winloop.Logger().Info("surface: created",
		"backend", b.Name(), "width", s.cfg.Width, "height", s.cfg.Height, "supersample", f)
	return s, nil
}

func (s *Surface) configure(cfg Configuration) error {
	if err := s.backend.Configure(cfg); err != nil {
		s.configured = false
		return err
	}
	cfg.Format = s.backend.SurfaceFormat()
	s.cfg = cfg
	s.configured = true
	return nil
}

// Resize reconfigures the surface for a new framebuffer size. It never
// recreates the device. Resizing to the current size does nothing.
// A non-positive size, or one whose intermediate target would exceed
// MaxTargetDimension, is ignored and reported as ErrInvalidSize.
func (s *Surface) Resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		winloop.Logger().Debug("surface: ignoring resize", "width", width, "height", height)
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if s.configured && width == s.cfg.Width && height == s.cfg.Height {
		return nil
	}
	cfg := s.cfg
	cfg.Width, cfg.Height = width, height
	if err := cfg.checkScaled(); err != nil {
		winloop.Logger().Warn("surface: ignoring resize", "width", width, "height", height, "err", err)
		return err
	}
	if err := s.configure(cfg); err != nil {
		// Remember the size so the next Acquire retries it.
		s.cfg = cfg
		return err
	}
	winloop.Logger().Debug("surface: reconfigured", "width", width, "height", height)
	return nil
}

// Acquire begins a frame. It fails with an error wrapping
// winloop.ErrSurfaceLost when the surface could not be (re)configured or
// the backend lost it; the caller skips the frame.
func (s *Surface) Acquire() (*Frame, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.frame != nil {
		return nil, fmt.Errorf("%w: frame already acquired", winloop.ErrRender)
	}
	if !s.configured {
		if err := s.configure(s.cfg); err != nil {
			if errors.Is(err, ErrInvalidSize) {
				return nil, fmt.Errorf("%w: reconfigure: %w", winloop.ErrSurfaceLost, err)
			}
			return nil, err
		}
	}

	present, err := s.backend.AcquireFrame()
	if err != nil {
		if errors.Is(err, winloop.ErrSurfaceLost) {
			s.configured = false
		}
		return nil, err
	}

	target := present
	if s.cfg.Supersampled() {
		w, h := s.cfg.Scaled()
		target, err = s.backend.Offscreen(w, h)
		if err != nil {
			s.backend.Discard(present)
			return nil, err
		}
	}

	f := s.cfg.Supersample
	ctx := render.NewContext(s)
	ctx.Scale = f
	if f != 1 {
		ctx.Transform = render.Scale(f, f)
	}

	s.enc.Reset()
	s.frame = &Frame{s: s, present: present, target: target, ctx: ctx}
	return s.frame, nil
}

// Present executes the frame's commands and presents it. Under
// supersampling the resolve pass is recorded first.
func (s *Surface) Present(f *Frame) error {
	if err := s.checkFrame(f); err != nil {
		return err
	}
	if f.Supersampled() {
		s.enc.Resolve(f.present, f.target)
	}
	if err := s.backend.Execute(s.enc.Commands()); err != nil {
		s.Discard(f)
		return err
	}
	s.finish(f)
	if err := s.backend.Present(f.present); err != nil {
		if errors.Is(err, winloop.ErrSurfaceLost) {
			s.configured = false
		}
		return err
	}
	return nil
}

// Discard drops a frame without presenting it.
func (s *Surface) Discard(f *Frame) {
	if s.checkFrame(f) != nil {
		return
	}
	s.backend.Discard(f.present)
	s.finish(f)
}

func (s *Surface) checkFrame(f *Frame) error {
	if f == nil || f != s.frame {
		return fmt.Errorf("%w: frame is not current", winloop.ErrRender)
	}
	return nil
}

func (s *Surface) finish(f *Frame) {
	f.done = true
	s.frame = nil
	s.enc.Reset()
}

// Redraw renders steps into a new frame and presents it.
//
// A lost surface skips the frame and returns nil. A failing step discards
// the frame and its error, wrapping winloop.ErrRender, is returned.
func (s *Surface) Redraw(ctx context.Context, steps ...render.Widget) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := s.Acquire()
	if errors.Is(err, winloop.ErrSurfaceLost) {
		winloop.Logger().Debug("surface: frame skipped", "err", err)
		return nil
	}
	if err != nil {
		return err
	}
	if err := render.Steps(steps).Render(f.Context(), f.Encoder(), f.Target()); err != nil {
		s.Discard(f)
		if !errors.Is(err, winloop.ErrRender) {
			err = fmt.Errorf("%w: %w", winloop.ErrRender, err)
		}
		return err
	}
	err = s.Present(f)
	if errors.Is(err, winloop.ErrSurfaceLost) {
		winloop.Logger().Debug("surface: present skipped", "err", err)
		return nil
	}
	return err
}

// Size returns the presentation size in physical pixels.
func (s *Surface) Size() (int, int) {
	return s.cfg.Width, s.cfg.Height
}

// Format returns the presentation format.
func (s *Surface) Format() gputypes.TextureFormat {
	return s.cfg.Format
}

// Supersample returns the supersample factor F.
func (s *Surface) Supersample() float64 {
	return s.cfg.Supersample
}

// Config returns the current configuration.
func (s *Surface) Config() Configuration {
	return s.cfg
}

// Backend returns the backend the surface presents through.
func (s *Surface) Backend() Backend {
	return s.backend
}

// Close releases the backend. It is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	if s.frame != nil {
		s.Discard(s.frame)
	}
	s.closed = true
	if err := s.backend.Release(); err != nil {
		winloop.Logger().Warn("surface: release failed", "err", err)
		return err
	}
	return nil
}

// Closed reports whether Close was called.
func (s *Surface) Closed() bool {
	return s.closed
}

// Device implements gpucontext.DeviceProvider.
func (s *Surface) Device() gpucontext.Device { return s.backend.Device() }

// Queue implements gpucontext.DeviceProvider.
func (s *Surface) Queue() gpucontext.Queue { return s.backend.Queue() }

// Adapter implements gpucontext.DeviceProvider.
func (s *Surface) Adapter() gpucontext.Adapter { return s.backend.Adapter() }

// AdapterInfo implements gpucontext.DeviceProvider.
func (s *Surface) AdapterInfo() gpucontext.AdapterInfo { return s.backend.AdapterInfo() }

// SurfaceFormat implements gpucontext.DeviceProvider.
func (s *Surface) SurfaceFormat() gputypes.TextureFormat { return s.backend.SurfaceFormat() }

var _ gpucontext.DeviceProvider = (*Surface)(nil)

// Frame is one acquired frame. It is valid until Present or Discard.
type Frame struct {
	s       *Surface
	present render.ColorTarget
	target  render.ColorTarget
	ctx     *render.Context
	done    bool
}

// Target returns the target render steps draw into: the intermediate
// target when supersampling, the presentation frame otherwise.
func (f *Frame) Target() render.ColorTarget { return f.target }

// Presentation returns the presentation frame.
func (f *Frame) Presentation() render.ColorTarget { return f.present }

// Encoder returns the encoder that records the frame's commands.
func (f *Frame) Encoder() *render.Encoder { return f.s.enc }

// Context returns the render context for the frame. Its transform includes
// the supersample scale.
func (f *Frame) Context() *render.Context { return f.ctx }

// Supersampled reports whether the frame renders through an intermediate
// target.
func (f *Frame) Supersampled() bool { return f.target != f.present }

// Done reports whether the frame was presented or discarded.
func (f *Frame) Done() bool { return f.done }
