// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package desktop

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/winloop/platform"
)

func nativeHandles(w *glfw.Window) (platform.NativeHandles, error) {
	hwnd := uintptr(unsafe.Pointer(w.GetWin32Window()))
	if hwnd == 0 {
		return platform.NativeHandles{}, platform.ErrNoHandles
	}
	return platform.NativeHandles{Window: hwnd}, nil
}
