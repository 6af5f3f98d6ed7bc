// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !linux && !freebsd && !netbsd && !openbsd && !windows

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/winloop/platform"
)

// nativeHandles reports no handles. On macOS GLFW 3.3 exposes the NSWindow
// but wgpu needs its content view, so the surface falls back to the
// software backend.
func nativeHandles(*glfw.Window) (platform.NativeHandles, error) {
	return platform.NativeHandles{}, platform.ErrNoHandles
}
