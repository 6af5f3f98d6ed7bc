// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle gives render steps the device and queue of the surface that
// presents the frame, so steps that own GPU resources create them there.
// It is gpucontext.DeviceProvider, and a Surface is one.
type DeviceHandle = gpucontext.DeviceProvider

// TextureView is a GPU texture view a target renders into. CPU targets
// have none.
type TextureView interface {
	Destroy()
}

// CPUDevice is the DeviceHandle of CPU rendering. It has no device, queue
// or adapter, and its surface format is the layout of PixmapTarget.
type CPUDevice struct{}

var _ DeviceHandle = CPUDevice{}

func (CPUDevice) Device() gpucontext.Device   { return nil }
func (CPUDevice) Queue() gpucontext.Queue     { return nil }
func (CPUDevice) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo describes the CPU as a software adapter.
func (CPUDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "cpu", Type: gpucontext.AdapterTypeSoftware}
}

// SurfaceFormat is RGBA8Unorm, the format of every PixmapTarget.
func (CPUDevice) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}
