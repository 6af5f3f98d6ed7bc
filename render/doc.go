// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines what a frame is drawn with: color targets,
// widgets that record drawing commands, and executors that run them.
//
// # Recording and execution
//
// A Widget never touches pixels. Its Render method records commands into
// an Encoder against a ColorTarget; the surface that acquired the target
// hands the list to an Executor when the frame is presented.
//
//	enc := render.NewEncoder()
//	steps := render.Steps{render.Clear{Color: color.White}, circle}
//	if err := steps.Render(ctx, enc, frame.Target()); err != nil {
//	    return err
//	}
//
// Steps renders in order and stops at the first failing widget.
//
// # Targets
//
//   - PixmapTarget: CPU-backed *image.RGBA, used by the software backend
//   - TextureTarget: GPU texture view, used by the wgpu backend
//   - Sub: a view of another target with a narrower viewport
//
// Every command is clipped to the viewport its target reported when the
// command was recorded.
//
// # Executors
//
//   - SoftwareRenderer rasterizes with golang.org/x/image/vector and
//     scales with golang.org/x/image/draw.
//   - GPURenderer encodes one render pass per command on a wgpu device.
//     Its WGSL is validated with naga when the renderer is created.
//
// # Built-in widgets
//
//   - Clear fills the viewport with a color.
//   - Circle fills an anti-aliased circle mapped through Context.Transform.
//   - Load decodes an image file once, draws it every frame, and keeps it
//     until Release.
//
// # Thread Safety
//
// Encoders, targets, and executors are driven by the goroutine running the
// dispatch loop and are not safe for concurrent use.
package render
