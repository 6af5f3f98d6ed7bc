// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface owns the presentation surface of a window.
//
// A Surface pairs a window with a Backend that holds the GPU device, the
// queue and the swap chain. It configures presentation at the window's
// framebuffer size, hands out one frame at a time, and presents it once the
// render steps have recorded their commands.
//
// # Backends
//
//   - wgpu: github.com/gogpu/wgpu, created from the window's native handles
//   - software: CPU pixmaps, used headless and in tests
//
// Backends are selected through a priority registry. Third-party backends
// can register themselves:
//
//	func init() {
//	    surface.Register("metal", 100, metalFactory, metalAvailable)
//	}
//
// # Supersampling
//
// With a supersample factor F > 1 the frame's target is an intermediate
// texture of ceil(W·F) × ceil(H·F) pixels and the render context carries a
// Scale(F, F) transform. Present records a resolve pass that downsamples the
// intermediate into the presentation frame with a linear filter.
//
// # Usage
//
//	s, err := surface.New(win, surface.Options{Supersample: 2})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	err = s.Redraw(ctx, render.Clear{Color: color.White})
//
// # Errors
//
// Creation failures wrap winloop.ErrInit. A lost surface is reported as
// winloop.ErrSurfaceLost and the frame is skipped; Redraw turns it into nil.
// Out-of-memory conditions wrap winloop.ErrOutOfMemory.
package surface
