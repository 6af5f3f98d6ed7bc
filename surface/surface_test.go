// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/platform"
	"github.com/gogpu/winloop/platform/headless"
	"github.com/gogpu/winloop/render"
)

var white = color.RGBA{255, 255, 255, 255}

// countingBackend records backend calls and can inject acquire failures.
type countingBackend struct {
	*SoftwareBackend
	configures int
	acquires   int
	failNext   error
}

func newCountingBackend() *countingBackend {
	return &countingBackend{SoftwareBackend: NewSoftwareBackend(Options{})}
}

func (b *countingBackend) Configure(cfg Configuration) error {
	b.configures++
	return b.SoftwareBackend.Configure(cfg)
}

func (b *countingBackend) AcquireFrame() (render.ColorTarget, error) {
	b.acquires++
	if err := b.failNext; err != nil {
		b.failNext = nil
		return nil, err
	}
	return b.SoftwareBackend.AcquireFrame()
}

func newTestSurface(t *testing.T, b Backend, w, h int, f float64) *Surface {
	t.Helper()
	s, err := NewWithBackend(b, Options{Width: w, Height: h, Supersample: f})
	if err != nil {
		t.Fatalf("NewWithBackend() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// firstMismatch returns the first pixel of img that differs from want.
func firstMismatch(img *image.RGBA, want color.RGBA) (image.Point, bool) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != want {
				return image.Pt(x, y), true
			}
		}
	}
	return image.Point{}, false
}

// TestResizeViewportWithinScaledBounds checks that after any resize the
// acquired target's viewport lies within ceil(W·F) × ceil(H·F).
func TestResizeViewportWithinScaledBounds(t *testing.T) {
	sizes := []image.Point{{100, 100}, {1, 1}, {333, 77}, {640, 480}, {7, 1031}}
	for _, f := range []float64{1, 1.5, 2, 3} {
		t.Run(fmt.Sprintf("F=%g", f), func(t *testing.T) {
			s := newTestSurface(t, NewSoftwareBackend(Options{}), 50, 50, f)
			for _, sz := range sizes {
				if err := s.Resize(sz.X, sz.Y); err != nil {
					t.Fatalf("Resize(%d, %d) error = %v", sz.X, sz.Y, err)
				}
				fr, err := s.Acquire()
				if err != nil {
					t.Fatalf("Acquire() error = %v", err)
				}
				sw, sh := s.Config().Scaled()
				bounds := image.Rect(0, 0, sw, sh)
				tgt := fr.Target()
				if vp := tgt.Viewport(); !vp.In(bounds) {
					t.Errorf("%v: Viewport() = %v, not within %v", sz, vp, bounds)
				}
				if tgt.Width() != sw || tgt.Height() != sh {
					t.Errorf("%v: target = %dx%d, want %dx%d", sz, tgt.Width(), tgt.Height(), sw, sh)
				}
				if got := fr.Presentation(); got.Width() != sz.X || got.Height() != sz.Y {
					t.Errorf("%v: presentation = %dx%d", sz, got.Width(), got.Height())
				}
				s.Discard(fr)
			}
		})
	}
}

// TestConfigurationScaled tests the ceiling of the supersampled size.
func TestConfigurationScaled(t *testing.T) {
	tests := []struct {
		w, h   int
		f      float64
		ww, wh int
	}{
		{100, 100, 1, 100, 100},
		{100, 100, 2, 200, 200},
		{101, 33, 1.5, 152, 50},
		{10, 10, 0.5, 10, 10},
	}
	for _, tt := range tests {
		c := Configuration{Width: tt.w, Height: tt.h, Supersample: tt.f}
		if w, h := c.Scaled(); w != tt.ww || h != tt.wh {
			t.Errorf("Scaled(%dx%d, F=%g) = %dx%d, want %dx%d", tt.w, tt.h, tt.f, w, h, tt.ww, tt.wh)
		}
	}
}

// TestResizeIdempotent checks that resizing twice to the same size yields
// the same configuration and only one backend reconfiguration.
func TestResizeIdempotent(t *testing.T) {
	b := newCountingBackend()
	s := newTestSurface(t, b, 100, 100, 2)
	base := b.configures

	if err := s.Resize(300, 200); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	first := s.Config()
	if err := s.Resize(300, 200); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if got := s.Config(); got != first {
		t.Errorf("Config() after second resize = %+v, want %+v", got, first)
	}
	if n := b.configures - base; n != 1 {
		t.Errorf("Configure calls = %d, want 1", n)
	}
}

// TestResizeInvalidSize tests that minimized sizes are ignored.
func TestResizeInvalidSize(t *testing.T) {
	b := newCountingBackend()
	s := newTestSurface(t, b, 100, 80, 1)
	base := b.configures

	for _, sz := range []image.Point{{0, 0}, {0, 10}, {10, -1}} {
		err := s.Resize(sz.X, sz.Y)
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Resize(%v) error = %v, want ErrInvalidSize", sz, err)
		}
	}
	if w, h := s.Size(); w != 100 || h != 80 {
		t.Errorf("Size() = %dx%d, want 100x80", w, h)
	}
	if b.configures != base {
		t.Errorf("Configure called %d times for invalid sizes", b.configures-base)
	}
}

// TestSupersampleEndToEndWhite renders a white clear at 100×100 with F=2
// and checks both the 200×200 intermediate and the presented frame.
func TestSupersampleEndToEndWhite(t *testing.T) {
	b := NewSoftwareBackend(Options{})
	var presented *image.RGBA
	b.Presenter = func(img *image.RGBA) { presented = img }
	s := newTestSurface(t, b, 100, 100, 2)

	fr, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if !fr.Supersampled() {
		t.Fatal("Supersampled() = false, want true")
	}
	if err := (render.Clear{Color: color.White}).Render(fr.Context(), fr.Encoder(), fr.Target()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	intermediate, ok := fr.Target().(*render.PixmapTarget)
	if !ok {
		t.Fatalf("Target() = %T, want *render.PixmapTarget", fr.Target())
	}
	if err := s.Present(fr); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	if got := intermediate.Image().Bounds().Size(); got != image.Pt(200, 200) {
		t.Fatalf("intermediate size = %v, want (200,200)", got)
	}
	if p, bad := firstMismatch(intermediate.Image(), white); bad {
		t.Errorf("intermediate pixel %v = %v, want white", p, intermediate.Image().RGBAAt(p.X, p.Y))
	}

	front := b.Front()
	if front == nil {
		t.Fatal("Front() = nil after Present")
	}
	if got := front.Bounds().Size(); got != image.Pt(100, 100) {
		t.Fatalf("presented size = %v, want (100,100)", got)
	}
	if p, bad := firstMismatch(front, white); bad {
		t.Errorf("presented pixel %v = %v, want white", p, front.RGBAAt(p.X, p.Y))
	}
	if presented == nil || !bytes.Equal(presented.Pix, front.Pix) {
		t.Error("Presenter did not receive the presented frame")
	}
}

// TestFrontIsStableAcrossPresents checks that a frame returned by Front
// keeps its pixels after later frames reuse the swap chain buffers.
func TestFrontIsStableAcrossPresents(t *testing.T) {
	b := NewSoftwareBackend(Options{})
	s := newTestSurface(t, b, 8, 8, 1)
	red := color.RGBA{255, 0, 0, 255}

	if err := s.Redraw(context.Background(), render.Clear{Color: white}); err != nil {
		t.Fatalf("Redraw(white) error = %v", err)
	}
	first := b.Front()
	if first == nil {
		t.Fatal("Front() = nil after Present")
	}
	for range 2 {
		if err := s.Redraw(context.Background(), render.Clear{Color: red}); err != nil {
			t.Fatalf("Redraw(red) error = %v", err)
		}
	}

	if p, bad := firstMismatch(first, white); bad {
		t.Errorf("earlier Front() pixel %v = %v after later presents, want white", p, first.RGBAAt(p.X, p.Y))
	}
	if p, bad := firstMismatch(b.Front(), red); bad {
		t.Errorf("Front() pixel %v is not red", p)
	}
}

// TestContextCarriesSupersampleTransform tests that widget coordinates
// are scaled by F.
func TestContextCarriesSupersampleTransform(t *testing.T) {
	s := newTestSurface(t, NewSoftwareBackend(Options{}), 100, 100, 2)
	fr, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer s.Discard(fr)

	if fr.Context().Scale != 2 {
		t.Errorf("Scale = %v, want 2", fr.Context().Scale)
	}
	c := render.Circle{Center: render.Pt(50, 50), Radius: 10, Color: color.Black}
	if err := c.Render(fr.Context(), fr.Encoder(), fr.Target()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	cmd := fr.Encoder().Commands()[0]
	if cmd.Center != render.Pt(100, 100) || cmd.Radius != 20 {
		t.Errorf("circle = %v r=%v, want (100,100) r=20", cmd.Center, cmd.Radius)
	}
}

// TestRedrawSkipsLostFrame tests that a lost surface skips the frame and
// the next redraw reconfigures.
func TestRedrawSkipsLostFrame(t *testing.T) {
	b := newCountingBackend()
	s := newTestSurface(t, b, 64, 64, 1)
	base := b.configures

	b.failNext = fmt.Errorf("%w: minimized", winloop.ErrSurfaceLost)
	if err := s.Redraw(context.Background(), render.Clear{Color: color.White}); err != nil {
		t.Fatalf("Redraw() with lost surface error = %v, want nil", err)
	}
	if n := b.Presented(); n != 0 {
		t.Errorf("Presented() = %d, want 0", n)
	}

	if err := s.Redraw(context.Background(), render.Clear{Color: color.White}); err != nil {
		t.Fatalf("Redraw() error = %v", err)
	}
	if n := b.Presented(); n != 1 {
		t.Errorf("Presented() = %d, want 1", n)
	}
	if n := b.configures - base; n != 1 {
		t.Errorf("Configure calls after lost surface = %d, want 1", n)
	}
}

// TestRedrawRenderErrorDiscards tests that a failing step discards the
// frame and reports a render error.
func TestRedrawRenderErrorDiscards(t *testing.T) {
	b := NewSoftwareBackend(Options{})
	s := newTestSurface(t, b, 32, 32, 2)

	boom := errors.New("boom")
	var after bool
	err := s.Redraw(context.Background(),
		render.Clear{Color: color.White},
		render.WidgetFunc(func(*render.Context, *render.Encoder, render.ColorTarget) error { return boom }),
		render.WidgetFunc(func(*render.Context, *render.Encoder, render.ColorTarget) error {
			after = true
			return nil
		}),
	)
	if !errors.Is(err, winloop.ErrRender) || !errors.Is(err, boom) {
		t.Fatalf("Redraw() error = %v, want ErrRender wrapping boom", err)
	}
	if after {
		t.Error("step after the failing one ran")
	}
	if n := b.Presented(); n != 0 {
		t.Errorf("Presented() = %d, want 0", n)
	}

	fr, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire() after discard error = %v", err)
	}
	if fr.Encoder().Len() != 0 {
		t.Errorf("encoder has %d stale commands", fr.Encoder().Len())
	}
	s.Discard(fr)
}

// TestRedrawCanceled tests that a canceled context does no work.
func TestRedrawCanceled(t *testing.T) {
	b := newCountingBackend()
	s := newTestSurface(t, b, 10, 10, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Redraw(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Redraw() error = %v, want context.Canceled", err)
	}
	if b.acquires != 0 {
		t.Errorf("AcquireFrame calls = %d, want 0", b.acquires)
	}
}

// TestAcquireTwice tests that only one frame may be in flight.
func TestAcquireTwice(t *testing.T) {
	s := newTestSurface(t, NewSoftwareBackend(Options{}), 10, 10, 1)
	fr, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if _, err := s.Acquire(); !errors.Is(err, winloop.ErrRender) {
		t.Errorf("second Acquire() error = %v, want ErrRender", err)
	}
	s.Discard(fr)
	if !fr.Done() {
		t.Error("Done() = false after Discard")
	}
	if err := s.Present(fr); !errors.Is(err, winloop.ErrRender) {
		t.Errorf("Present() of discarded frame error = %v, want ErrRender", err)
	}
}

// TestCloseIdempotent tests Close and use after close.
func TestCloseIdempotent(t *testing.T) {
	s, err := NewWithBackend(NewSoftwareBackend(Options{}), Options{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("NewWithBackend() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !s.Closed() {
		t.Error("Closed() = false")
	}
	if _, err := s.Acquire(); !errors.Is(err, ErrClosed) {
		t.Errorf("Acquire() error = %v, want ErrClosed", err)
	}
	if err := s.Resize(20, 20); !errors.Is(err, ErrClosed) {
		t.Errorf("Resize() error = %v, want ErrClosed", err)
	}
}

// TestNewUsesWindowSize tests that zero option sizes come from the window.
func TestNewUsesWindowSize(t *testing.T) {
	p := headless.New()
	win, err := p.CreateWindow(platform.WindowAttributes{Title: "t", Width: 120, Height: 90})
	if err != nil {
		t.Fatalf("CreateWindow() error = %v", err)
	}

	s, err := New(win, Options{Backend: "software"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if w, h := s.Size(); w != 120 || h != 90 {
		t.Errorf("Size() = %dx%d, want 120x90", w, h)
	}
	if s.Supersample() != 1 {
		t.Errorf("Supersample() = %v, want 1", s.Supersample())
	}
	if got := s.AdapterInfo().Type; got != gpucontext.AdapterTypeSoftware {
		t.Errorf("AdapterInfo().Type = %v, want software", got)
	}
	if s.Backend().Name() != "software" {
		t.Errorf("Backend().Name() = %s, want software", s.Backend().Name())
	}
}

// TestNewWithoutNativeHandles tests that the GPU backend reports an
// initialization error for windows without OS handles.
func TestNewWithoutNativeHandles(t *testing.T) {
	p := headless.New()
	win, err := p.CreateWindow(platform.WindowAttributes{Title: "t", Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("CreateWindow() error = %v", err)
	}
	_, err = New(win, Options{Backend: "wgpu"})
	if !errors.Is(err, winloop.ErrInit) {
		t.Errorf("New() error = %v, want ErrInit", err)
	}
}

// TestNewRejectsInvalidSize tests creation without a usable size.
func TestNewRejectsInvalidSize(t *testing.T) {
	if _, err := New(nil, Options{Backend: "software"}); !errors.Is(err, winloop.ErrInit) {
		t.Errorf("New(nil) error = %v, want ErrInit", err)
	}
	_, err := NewWithBackend(NewSoftwareBackend(Options{}), Options{Width: 0, Height: 5})
	if !errors.Is(err, winloop.ErrInit) || !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewWithBackend(0x5) error = %v, want ErrInit and ErrInvalidSize", err)
	}
}

// TestNewRejectsUnboundedSupersample tests that factors which cannot
// produce an allocatable intermediate target fail before configuring.
func TestNewRejectsUnboundedSupersample(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), 1e9, MaxSupersample + 0.5} {
		b := newCountingBackend()
		s, err := NewWithBackend(b, Options{Width: 64, Height: 64, Supersample: f})
		if err == nil {
			_ = s.Close()
			t.Errorf("NewWithBackend(F=%v) error = nil", f)
			continue
		}
		if !errors.Is(err, winloop.ErrInit) || !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewWithBackend(F=%v) error = %v, want ErrInit and ErrInvalidSize", f, err)
		}
		if b.configures != 0 {
			t.Errorf("NewWithBackend(F=%v) configured the backend %d times", f, b.configures)
		}
	}

	// Negative infinity is below 1 and clamps like any other small factor.
	s := newTestSurface(t, newCountingBackend(), 8, 8, math.Inf(-1))
	if got := s.Supersample(); got != 1 {
		t.Errorf("Supersample = %v, want 1", got)
	}
}

// TestResizeRejectsOversizedTarget tests that a resize whose scaled size
// exceeds MaxTargetDimension keeps the previous configuration.
func TestResizeRejectsOversizedTarget(t *testing.T) {
	b := newCountingBackend()
	s := newTestSurface(t, b, 100, 100, MaxSupersample)
	side := MaxTargetDimension/MaxSupersample + 1
	if err := s.Resize(side, 10); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Resize(%d, 10) error = %v, want ErrInvalidSize", side, err)
	}
	if w, h := s.Size(); w != 100 || h != 100 {
		t.Errorf("Size() = %dx%d, want 100x100", w, h)
	}
	frame, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire() after rejected resize error = %v", err)
	}
	if got := frame.Target().Width(); got != 100*MaxSupersample {
		t.Errorf("target width = %d, want %d", got, 100*MaxSupersample)
	}
	s.Discard(frame)
}

// TestOffscreenRejectsOversizedTarget tests the software backend bound.
func TestOffscreenRejectsOversizedTarget(t *testing.T) {
	b := NewSoftwareBackend(Options{})
	if _, err := b.Offscreen(MaxTargetDimension+1, 1); !errors.Is(err, winloop.ErrRender) {
		t.Errorf("Offscreen(%d, 1) error = %v, want ErrRender", MaxTargetDimension+1, err)
	}
}
