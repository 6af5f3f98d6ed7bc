// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/winloop"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		in   error
		want error
	}{
		{wgpu.ErrSurfaceLost, winloop.ErrSurfaceLost},
		{wgpu.ErrSurfaceOutdated, winloop.ErrSurfaceLost},
		{wgpu.ErrOutOfMemory, winloop.ErrOutOfMemory},
		{wgpu.ErrNoAdapters, winloop.ErrInit},
		{wgpu.ErrNoBackends, winloop.ErrInit},
	}
	for _, tt := range tests {
		got := mapError(tt.in)
		if !errors.Is(got, tt.want) {
			t.Errorf("mapError(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if !errors.Is(got, tt.in) {
			t.Errorf("mapError(%v) lost the cause", tt.in)
		}
	}

	other := errors.New("other")
	if got := mapError(other); got != other {
		t.Errorf("mapError(other) = %v, want unchanged", got)
	}
	if mapError(nil) != nil {
		t.Error("mapError(nil) != nil")
	}
}

func TestChooseFormat(t *testing.T) {
	caps := &wgpu.SurfaceCapabilities{Formats: []gputypes.TextureFormat{
		gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm,
	}}
	tests := []struct {
		name      string
		caps      *wgpu.SurfaceCapabilities
		preferred gputypes.TextureFormat
		want      gputypes.TextureFormat
	}{
		{"preferred", caps, gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm},
		{"default bgra", caps, gputypes.TextureFormatUndefined, gputypes.TextureFormatBGRA8Unorm},
		{"unsupported preferred", caps, gputypes.TextureFormatRGBA16Float, gputypes.TextureFormatBGRA8Unorm},
		{"no caps", nil, gputypes.TextureFormatUndefined, gputypes.TextureFormatBGRA8Unorm},
		{"first listed", &wgpu.SurfaceCapabilities{Formats: []gputypes.TextureFormat{gputypes.TextureFormatRGBA16Float}},
			gputypes.TextureFormatUndefined, gputypes.TextureFormatRGBA16Float},
	}
	for _, tt := range tests {
		if got := chooseFormat(tt.caps, tt.preferred); got != tt.want {
			t.Errorf("%s: chooseFormat() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestChooseAlpha(t *testing.T) {
	if got := chooseAlpha(nil); got != gputypes.CompositeAlphaModeAuto {
		t.Errorf("chooseAlpha(nil) = %v, want auto", got)
	}
	caps := &wgpu.SurfaceCapabilities{AlphaModes: []gputypes.CompositeAlphaMode{
		gputypes.CompositeAlphaModePremultiplied, gputypes.CompositeAlphaModeOpaque,
	}}
	if got := chooseAlpha(caps); got != gputypes.CompositeAlphaModeOpaque {
		t.Errorf("chooseAlpha() = %v, want opaque", got)
	}
}

func TestChoosePresentMode(t *testing.T) {
	caps := &wgpu.SurfaceCapabilities{PresentModes: []gputypes.PresentMode{
		gputypes.PresentModeFifo, gputypes.PresentModeMailbox,
	}}
	if got := choosePresentMode(caps, gputypes.PresentModeMailbox); got != gputypes.PresentModeMailbox {
		t.Errorf("mailbox = %v", PresentModeName(got))
	}
	if got := choosePresentMode(caps, gputypes.PresentModeImmediate); got != gputypes.PresentModeFifo {
		t.Errorf("unsupported immediate = %v, want fifo", PresentModeName(got))
	}
	if got := choosePresentMode(caps, gputypes.PresentModeUndefined); got != gputypes.PresentModeFifo {
		t.Errorf("undefined = %v, want fifo", PresentModeName(got))
	}
}

func TestParsePresentMode(t *testing.T) {
	for _, name := range []string{"fifo", "fifo-relaxed", "mailbox", "immediate"} {
		m, err := ParsePresentMode(name)
		if err != nil {
			t.Fatalf("ParsePresentMode(%q) error = %v", name, err)
		}
		if got := PresentModeName(m); got != name {
			t.Errorf("PresentModeName(ParsePresentMode(%q)) = %q", name, got)
		}
	}
	if m, err := ParsePresentMode(""); err != nil || m != gputypes.PresentModeFifo {
		t.Errorf("ParsePresentMode(\"\") = %v, %v; want fifo", m, err)
	}
	if _, err := ParsePresentMode("vsync"); err == nil {
		t.Error("ParsePresentMode(vsync) error = nil")
	}
}

func TestAdapterType(t *testing.T) {
	tests := []struct {
		in   gputypes.DeviceType
		want gpucontext.AdapterType
	}{
		{gputypes.DeviceTypeDiscreteGPU, gpucontext.AdapterTypeDiscrete},
		{gputypes.DeviceTypeIntegratedGPU, gpucontext.AdapterTypeIntegrated},
		{gputypes.DeviceTypeCPU, gpucontext.AdapterTypeSoftware},
		{gputypes.DeviceTypeVirtualGPU, gpucontext.AdapterTypeUnknown},
	}
	for _, tt := range tests {
		if got := adapterType(tt.in); got != tt.want {
			t.Errorf("adapterType(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWGPUBackendNilWindow(t *testing.T) {
	if _, err := NewWGPUBackend(nil, Options{}); !errors.Is(err, winloop.ErrInit) {
		t.Errorf("NewWGPUBackend(nil) error = %v, want ErrInit", err)
	}
}
