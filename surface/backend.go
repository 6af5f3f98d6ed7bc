// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/winloop/render"
)

// Options configures surface creation.
type Options struct {
	// Width and Height are the presentation size in physical pixels.
	// Zero means the window's current framebuffer size.
	Width  int
	Height int

	// Format is the preferred presentation format. Backends fall back to
	// the first supported format when it is unavailable.
	Format gputypes.TextureFormat

	// Supersample is the render scale F. Values below 1 are treated as 1.
	// F must be finite and at most MaxSupersample.
	Supersample float64

	// Backend names a registered backend. Empty selects the highest
	// priority backend that opens successfully.
	Backend string

	// PresentMode is the requested presentation mode. Undefined means fifo.
	PresentMode gputypes.PresentMode
}

// Render target limits.
const (
	// MaxSupersample is the largest accepted supersample factor.
	MaxSupersample = 8

	// MaxTargetDimension bounds each side of the render target: the
	// intermediate target when F > 1, the presentation frame otherwise.
	MaxTargetDimension = 16384
)

// Configuration is the observable configuration of a surface.
type Configuration struct {
	Width       int
	Height      int
	Format      gputypes.TextureFormat
	PresentMode gputypes.PresentMode
	Supersample float64
}

// Scaled returns the size of the intermediate target, ceil(W·F) × ceil(H·F).
func (c Configuration) Scaled() (int, int) {
	f := c.Supersample
	if f <= 1 {
		return c.Width, c.Height
	}
	return int(math.Ceil(float64(c.Width) * f)), int(math.Ceil(float64(c.Height) * f))
}

// checkScaled reports an error wrapping ErrInvalidSize when the render
// target of c exceeds the limits.
func (c Configuration) checkScaled() error {
	f := c.Supersample
	if math.IsNaN(f) || math.IsInf(f, 0) || f > MaxSupersample {
		return fmt.Errorf("%w: supersample %v outside [1, %d]", ErrInvalidSize, f, MaxSupersample)
	}
	if float64(c.Width)*math.Max(f, 1) > MaxTargetDimension ||
		float64(c.Height)*math.Max(f, 1) > MaxTargetDimension {
		return fmt.Errorf("%w: %dx%d at supersample %v exceeds %d pixels per side",
			ErrInvalidSize, c.Width, c.Height, f, MaxTargetDimension)
	}
	return nil
}

// Supersampled reports whether frames render through an intermediate target.
func (c Configuration) Supersampled() bool {
	return c.Supersample > 1
}

// Backend presents frames to a window on behalf of a Surface.
//
// A backend owns the device, queue and presentation surface. It executes
// the commands recorded for a frame with its render.Executor, including the
// resolve pass, and presents the acquired target.
//
// Backends are driven by the goroutine that runs the dispatch loop.
type Backend interface {
	gpucontext.DeviceProvider
	render.Executor

	// Name returns the registry name of the backend.
	Name() string

	// Configure (re)configures presentation at the given size. It never
	// recreates the device.
	Configure(cfg Configuration) error

	// AcquireFrame returns the next presentation target. It fails with an
	// error wrapping winloop.ErrSurfaceLost when the surface must be
	// reconfigured first.
	AcquireFrame() (render.ColorTarget, error)

	// Offscreen returns an intermediate target of the given size in the
	// presentation format. The backend may reuse a previous target of the
	// same size.
	Offscreen(width, height int) (render.ColorTarget, error)

	// Present shows an acquired target.
	Present(target render.ColorTarget) error

	// Discard drops an acquired target without presenting it.
	Discard(target render.ColorTarget)

	// Report describes the adapter.
	Report() AdapterReport

	// Release destroys the backend's resources.
	Release() error
}

// AdapterReport describes the adapter behind a backend.
type AdapterReport struct {
	Backend string
	Name    string
	Vendor  string
	Driver  string
	API     string
	Type    gpucontext.AdapterType
}
