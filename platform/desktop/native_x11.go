// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build (linux && !wayland) || (freebsd && !wayland) || (netbsd && !wayland) || (openbsd && !wayland)

package desktop

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/winloop/platform"
)

func nativeHandles(w *glfw.Window) (platform.NativeHandles, error) {
	display := uintptr(unsafe.Pointer(glfw.GetX11Display()))
	if display == 0 {
		return platform.NativeHandles{}, platform.ErrNoHandles
	}
	return platform.NativeHandles{
		Display: display,
		Window:  uintptr(w.GetX11Window()),
	}, nil
}
