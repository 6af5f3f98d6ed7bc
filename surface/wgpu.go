// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/allbackends"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/platform"
	"github.com/gogpu/winloop/render"
)

// WGPUBackend presents through github.com/gogpu/wgpu.
//
// Creation follows the WebGPU order: instance, surface from the window's
// native handles, an adapter compatible with that surface, then the device
// and its queue. Commands are executed by render.GPURenderer.
type WGPUBackend struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	renderer *render.GPURenderer

	info   gputypes.AdapterInfo
	caps   *wgpu.SurfaceCapabilities
	format gputypes.TextureFormat
	alpha  gputypes.CompositeAlphaMode
	cfg    Configuration

	configured bool
	current    *wgpu.SurfaceTexture
	frame      *render.TextureTarget
	offscreen  *render.TextureTarget
	released   bool
}

// wgpuAvailable reports whether any HAL backend is compiled in.
func wgpuAvailable() bool {
	return len(hal.AvailableBackends()) > 0
}

func openWGPU(win platform.NativeWindow, opts Options) (Backend, error) {
	return NewWGPUBackend(win, opts)
}

// NewWGPUBackend creates a device presenting to win. Every failure wraps
// winloop.ErrInit.
func NewWGPUBackend(win platform.NativeWindow, opts Options) (*WGPUBackend, error) {
	if win == nil {
		return nil, fmt.Errorf("%w: nil window", winloop.ErrInit)
	}
	handles, err := win.NativeHandles()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", winloop.ErrInit, err)
	}

	b := &WGPUBackend{}
	if err := b.init(handles, opts); err != nil {
		b.releaseAll()
		return nil, fmt.Errorf("%w: %w", winloop.ErrInit, mapError(err))
	}
	winloop.Logger().Info("surface: adapter selected",
		"backend", "wgpu", "name", b.info.Name, "api", b.info.Backend.String(), "format", b.format.String())
	return b, nil
}

func (b *WGPUBackend) init(handles platform.NativeHandles, opts Options) error {
	var err error
	b.instance, err = wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: wgpu.BackendsPrimary})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	b.surface, err = b.instance.CreateSurface(handles.Display, handles.Window)
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	b.adapter, err = b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:   gputypes.PowerPreferenceHighPerformance,
		CompatibleSurface: b.surface,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	b.info = b.adapter.Info()
	b.device, err = b.adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	b.caps = b.adapter.GetSurfaceCapabilities(b.surface)
	b.format = chooseFormat(b.caps, opts.Format)
	b.alpha = chooseAlpha(b.caps)

	b.renderer, err = render.NewGPURenderer(b.device)
	if err != nil {
		return err
	}
	return nil
}

// chooseFormat picks the preferred format when supported, then BGRA8 or
// RGBA8, then whatever the surface lists first.
func chooseFormat(caps *wgpu.SurfaceCapabilities, preferred gputypes.TextureFormat) gputypes.TextureFormat {
	if caps == nil || len(caps.Formats) == 0 {
		if preferred != gputypes.TextureFormatUndefined {
			return preferred
		}
		return gputypes.TextureFormatBGRA8Unorm
	}
	for _, f := range []gputypes.TextureFormat{preferred, gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm} {
		if f != gputypes.TextureFormatUndefined && slices.Contains(caps.Formats, f) {
			return f
		}
	}
	return caps.Formats[0]
}

func chooseAlpha(caps *wgpu.SurfaceCapabilities) gputypes.CompositeAlphaMode {
	if caps == nil || len(caps.AlphaModes) == 0 {
		return gputypes.CompositeAlphaModeAuto
	}
	if slices.Contains(caps.AlphaModes, gputypes.CompositeAlphaModeOpaque) {
		return gputypes.CompositeAlphaModeOpaque
	}
	return caps.AlphaModes[0]
}

// choosePresentMode returns mode when the surface supports it and fifo
// otherwise. Fifo is always supported.
func choosePresentMode(caps *wgpu.SurfaceCapabilities, mode gputypes.PresentMode) gputypes.PresentMode {
	if mode == gputypes.PresentModeUndefined {
		return gputypes.PresentModeFifo
	}
	if caps == nil || slices.Contains(caps.PresentModes, mode) {
		return mode
	}
	winloop.Logger().Debug("surface: present mode unsupported, using fifo", "mode", PresentModeName(mode))
	return gputypes.PresentModeFifo
}

// mapError translates wgpu errors into the winloop taxonomy.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, wgpu.ErrSurfaceLost), errors.Is(err, wgpu.ErrSurfaceOutdated):
		return fmt.Errorf("%w: %w", winloop.ErrSurfaceLost, err)
	case errors.Is(err, wgpu.ErrOutOfMemory):
		return fmt.Errorf("%w: %w", winloop.ErrOutOfMemory, err)
	case errors.Is(err, wgpu.ErrNoAdapters), errors.Is(err, wgpu.ErrNoBackends):
		return fmt.Errorf("%w: %w", winloop.ErrInit, err)
	default:
		return err
	}
}

// Name implements Backend.
func (b *WGPUBackend) Name() string { return "wgpu" }

// Configure implements Backend.
func (b *WGPUBackend) Configure(cfg Configuration) error {
	if b.released {
		return fmt.Errorf("%w: %w", winloop.ErrSurfaceLost, wgpu.ErrReleased)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	if b.current != nil {
		b.Discard(b.frame)
	}
	mode := choosePresentMode(b.caps, cfg.PresentMode)
	err := b.surface.Configure(b.device, &wgpu.SurfaceConfiguration{
		Width:       uint32(cfg.Width),
		Height:      uint32(cfg.Height),
		Format:      b.format,
		Usage:       wgpu.TextureUsageRenderAttachment,
		PresentMode: mode,
		AlphaMode:   b.alpha,
	})
	if err != nil {
		b.configured = false
		return mapError(err)
	}
	cfg.Format = b.format
	cfg.PresentMode = mode
	b.cfg = cfg
	b.configured = true
	return nil
}

// AcquireFrame implements Backend.
func (b *WGPUBackend) AcquireFrame() (render.ColorTarget, error) {
	if !b.configured {
		return nil, fmt.Errorf("%w: surface not configured", winloop.ErrSurfaceLost)
	}
	st, suboptimal, err := b.surface.GetCurrentTexture()
	if err != nil {
		if errors.Is(err, wgpu.ErrSurfaceLost) || errors.Is(err, wgpu.ErrSurfaceOutdated) {
			b.configured = false
		}
		return nil, mapError(err)
	}
	if suboptimal {
		winloop.Logger().Debug("surface: suboptimal frame")
	}
	view, err := st.CreateView(nil)
	if err != nil {
		b.surface.DiscardTexture()
		return nil, fmt.Errorf("%w: frame view: %w", winloop.ErrRender, mapError(err))
	}
	b.current = st
	b.frame = render.NewTextureTarget(&render.GPUView{View: view}, b.cfg.Width, b.cfg.Height, b.format)
	return b.frame, nil
}

// Offscreen implements Backend. The texture is kept until the size
// changes or the backend is released.
func (b *WGPUBackend) Offscreen(width, height int) (render.ColorTarget, error) {
	if width <= 0 || height <= 0 || width > MaxTargetDimension || height > MaxTargetDimension {
		return nil, fmt.Errorf("%w: offscreen %dx%d", winloop.ErrRender, width, height)
	}
	if t := b.offscreen; t != nil && t.Width() == width && t.Height() == height {
		t.SetViewport(render.Bounds(t))
		return t, nil
	}
	if b.offscreen != nil {
		b.offscreen.Destroy()
		b.offscreen = nil
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "winloop_supersample",
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        b.format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: offscreen texture: %w", winloop.ErrRender, mapError(err))
	}
	view, err := b.device.CreateTextureView(tex, &wgpu.TextureViewDescriptor{
		Label:         "winloop_supersample_view",
		Format:        b.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("%w: offscreen view: %w", winloop.ErrRender, mapError(err))
	}
	b.offscreen = render.NewTextureTarget(&render.GPUView{Texture: tex, View: view}, width, height, b.format)
	return b.offscreen, nil
}

// Execute implements render.Executor.
func (b *WGPUBackend) Execute(cmds []render.Command) error {
	if err := b.renderer.Execute(cmds); err != nil {
		return mapError(err)
	}
	return nil
}

// Capabilities implements render.Executor.
func (b *WGPUBackend) Capabilities() render.Capabilities {
	return b.renderer.Capabilities()
}

// Present implements Backend.
func (b *WGPUBackend) Present(target render.ColorTarget) error {
	if b.current == nil || target != render.ColorTarget(b.frame) {
		return fmt.Errorf("%w: present of a target that was not acquired", winloop.ErrRender)
	}
	st := b.current
	b.current = nil
	defer b.releaseFrame()

	if err := b.surface.Present(st); err != nil {
		if errors.Is(err, wgpu.ErrSurfaceLost) || errors.Is(err, wgpu.ErrSurfaceOutdated) {
			b.configured = false
		}
		return mapError(err)
	}
	return nil
}

// Discard implements Backend.
func (b *WGPUBackend) Discard(render.ColorTarget) {
	if b.current == nil {
		return
	}
	b.current = nil
	b.surface.DiscardTexture()
	b.releaseFrame()
}

func (b *WGPUBackend) releaseFrame() {
	if b.frame != nil {
		b.frame.Destroy()
		b.frame = nil
	}
}

// Device implements gpucontext.DeviceProvider.
func (b *WGPUBackend) Device() gpucontext.Device { return b.device }

// Queue implements gpucontext.DeviceProvider.
func (b *WGPUBackend) Queue() gpucontext.Queue { return b.device.Queue() }

// Adapter implements gpucontext.DeviceProvider.
func (b *WGPUBackend) Adapter() gpucontext.Adapter { return b.adapter }

// SurfaceFormat implements gpucontext.DeviceProvider.
func (b *WGPUBackend) SurfaceFormat() gputypes.TextureFormat { return b.format }

// AdapterInfo implements gpucontext.DeviceProvider.
func (b *WGPUBackend) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: b.info.Name, Type: adapterType(b.info.DeviceType)}
}

// Report implements Backend.
func (b *WGPUBackend) Report() AdapterReport {
	return reportFromInfo(b.info)
}

func reportFromInfo(info gputypes.AdapterInfo) AdapterReport {
	return AdapterReport{
		Backend: "wgpu",
		Name:    info.Name,
		Vendor:  info.Vendor,
		Driver:  info.Driver,
		API:     info.Backend.String(),
		Type:    adapterType(info.DeviceType),
	}
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// Release implements Backend.
func (b *WGPUBackend) Release() error {
	if b.released {
		return nil
	}
	b.released = true
	b.Discard(b.frame)
	b.releaseAll()
	return nil
}

// releaseAll destroys objects in reverse creation order. It tolerates a
// partially initialized backend.
func (b *WGPUBackend) releaseAll() {
	if b.offscreen != nil {
		b.offscreen.Destroy()
		b.offscreen = nil
	}
	if b.renderer != nil {
		b.renderer.Release()
		b.renderer = nil
	}
	if b.surface != nil {
		if b.configured {
			b.surface.Unconfigure()
			b.configured = false
		}
		b.surface.Release()
		b.surface = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// ProbeAdapter requests the default adapter without a window and reports
// it. It backs the report command.
func ProbeAdapter() (AdapterReport, error) {
	inst, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: wgpu.BackendsPrimary})
	if err != nil {
		return AdapterReport{}, fmt.Errorf("%w: %w", winloop.ErrInit, mapError(err))
	}
	defer inst.Release()

	adapter, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return AdapterReport{}, fmt.Errorf("%w: %w", winloop.ErrInit, mapError(err))
	}
	defer adapter.Release()
	return reportFromInfo(adapter.Info()), nil
}

// PresentModeName returns the configuration name of a present mode.
func PresentModeName(m gputypes.PresentMode) string {
	switch m {
	case gputypes.PresentModeFifo:
		return "fifo"
	case gputypes.PresentModeFifoRelaxed:
		return "fifo-relaxed"
	case gputypes.PresentModeMailbox:
		return "mailbox"
	case gputypes.PresentModeImmediate:
		return "immediate"
	default:
		return "undefined"
	}
}

// ParsePresentMode parses a configuration name. The empty string is fifo.
func ParsePresentMode(name string) (gputypes.PresentMode, error) {
	switch name {
	case "", "fifo":
		return gputypes.PresentModeFifo, nil
	case "fifo-relaxed":
		return gputypes.PresentModeFifoRelaxed, nil
	case "mailbox":
		return gputypes.PresentModeMailbox, nil
	case "immediate":
		return gputypes.PresentModeImmediate, nil
	default:
		return gputypes.PresentModeUndefined, fmt.Errorf("unknown present mode %q", name)
	}
}

var _ Backend = (*WGPUBackend)(nil)
