// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Executor runs recorded commands against their targets.
//
// Executors are the back half of a surface backend: the software backend
// rasterizes on the CPU, the wgpu backend translates each command into
// render passes.
//
// Thread Safety: Executors are NOT thread-safe. They are driven by the
// goroutine that runs the dispatch loop.
type Executor interface {
	// Execute processes cmds in order. It stops at the first failure and
	// returns an error wrapping winloop.ErrRender.
	Execute(cmds []Command) error

	// Capabilities returns the executor's capabilities.
	Capabilities() Capabilities
}

// Capabilities describes the features supported by an executor.
type Capabilities struct {
	// IsGPU indicates if this is a GPU-accelerated executor.
	IsGPU bool

	// SupportsAntialiasing indicates if anti-aliased circles are supported.
	SupportsAntialiasing bool

	// SupportsImages indicates if OpImage commands are supported.
	SupportsImages bool

	// MaxTextureSize is the maximum texture dimension (0 = unlimited).
	MaxTextureSize int
}
