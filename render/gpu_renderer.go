// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/winloop"
)

//go:embed shaders/shapes.wgsl
var shapesShaderSource string

//go:embed shaders/blit.wgsl
var blitShaderSource string

// Uniform block sizes, see the WGSL structs.
const (
	shapeUniformSize = 48 // rect + color + circle, 3 × vec4<f32>
	blitUniformSize  = 32 // dst + uv, 2 × vec4<f32>
)

// imageCacheFrames is how many Execute calls an uploaded image survives
// without being drawn.
const imageCacheFrames = 120

// GPUView is the TextureView of targets executed by GPURenderer.
//
// Texture is set for offscreen targets the view owns; it is nil for
// presentation frames, whose texture belongs to the surface.
type GPUView struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

// Destroy releases the view and, if owned, the texture.
func (v *GPUView) Destroy() {
	if v.View != nil {
		v.View.Release()
		v.View = nil
	}
	if v.Texture != nil {
		v.Texture.Release()
		v.Texture = nil
	}
}

// pipelineKind selects a shader entry point and blend state.
type pipelineKind uint8

const (
	pipelineFill pipelineKind = iota
	pipelineCircle
	pipelineBlitOver
	pipelineBlitReplace
)

type pipelineKey struct {
	kind   pipelineKind
	format gputypes.TextureFormat
}

type gpuImage struct {
	tex      *wgpu.Texture
	view     *wgpu.TextureView
	lastUsed uint64
}

// GPURenderer executes commands on GPU targets with a wgpu device.
//
// Each command becomes one render pass: Clear of a whole target is a
// LoadOpClear pass, other commands draw a quad restricted by a scissor
// rectangle to the recorded viewport. Images are uploaded once and cached
// by identity while they keep being drawn.
//
// Example:
//
//	renderer, err := render.NewGPURenderer(device)
//	if err != nil {
//	    return err
//	}
//	defer renderer.Release()
//	err = renderer.Execute(enc.Commands())
type GPURenderer struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	shapes  *wgpu.ShaderModule
	blit    *wgpu.ShaderModule
	sampler *wgpu.Sampler

	shapeLayout     *wgpu.BindGroupLayout
	blitLayout      *wgpu.BindGroupLayout
	shapePipeLayout *wgpu.PipelineLayout
	blitPipeLayout  *wgpu.PipelineLayout

	pipelines map[pipelineKey]*wgpu.RenderPipeline
	images    map[*image.RGBA]*gpuImage
	frame     uint64

	// transient resources of the Execute call in flight
	transient []interface{ Release() }
}

// NewGPURenderer creates an executor bound to device. The shaders are
// validated with naga before the device compiles them.
func NewGPURenderer(device *wgpu.Device) (*GPURenderer, error) {
	if device == nil {
		return nil, fmt.Errorf("%w: nil device", winloop.ErrRender)
	}
	r := &GPURenderer{
		device:    device,
		queue:     device.Queue(),
		pipelines: make(map[pipelineKey]*wgpu.RenderPipeline),
		images:    make(map[*image.RGBA]*gpuImage),
	}
	if err := r.init(); err != nil {
		r.Release()
		return nil, fmt.Errorf("%w: %w", winloop.ErrRender, err)
	}
	return r, nil
}

func (r *GPURenderer) init() error {
	var err error
	if r.shapes, err = r.createShader("winloop_shapes", shapesShaderSource); err != nil {
		return err
	}
	if r.blit, err = r.createShader("winloop_blit", blitShaderSource); err != nil {
		return err
	}

	r.sampler, err = r.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        "winloop_linear",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		LodMaxClamp:  32,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}

	uniform := func(size uint64) wgpu.BindGroupLayoutEntry {
		return wgpu.BindGroupLayoutEntry{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform, MinBindingSize: size},
		}
	}
	r.shapeLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "winloop_shape_layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniform(shapeUniformSize)},
	})
	if err != nil {
		return fmt.Errorf("create shape layout: %w", err)
	}
	r.blitLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "winloop_blit_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniform(blitUniformSize),
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create blit layout: %w", err)
	}

	r.shapePipeLayout, err = r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "winloop_shape_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.shapeLayout},
	})
	if err != nil {
		return fmt.Errorf("create shape pipeline layout: %w", err)
	}
	r.blitPipeLayout, err = r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "winloop_blit_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.blitLayout},
	})
	if err != nil {
		return fmt.Errorf("create blit pipeline layout: %w", err)
	}
	return nil
}

// ValidateShaders compiles the embedded WGSL with naga and reports the
// SPIR-V size of each module.
func ValidateShaders() (map[string]int, error) {
	sizes := make(map[string]int, 2)
	for name, src := range map[string]string{"shapes": shapesShaderSource, "blit": blitShaderSource} {
		spirv, err := naga.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compile %s shader: %w", name, err)
		}
		sizes[name] = len(spirv)
	}
	return sizes, nil
}

func (r *GPURenderer) createShader(label, src string) (*wgpu.ShaderModule, error) {
	if _, err := naga.Compile(src); err != nil {
		return nil, fmt.Errorf("compile %s: %w", label, err)
	}
	m, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{Label: label, WGSL: src})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return m, nil
}

// pipeline returns the cached pipeline for kind and format, creating it on
// first use.
func (r *GPURenderer) pipeline(kind pipelineKind, format gputypes.TextureFormat) (*wgpu.RenderPipeline, error) {
	key := pipelineKey{kind: kind, format: format}
	if p, ok := r.pipelines[key]; ok {
		return p, nil
	}

	module, layout, entry := r.shapes, r.shapePipeLayout, "fs_fill"
	blend := gputypes.BlendStateReplace()
	switch kind {
	case pipelineCircle:
		entry = "fs_circle"
		blend = gputypes.BlendStatePremultiplied()
	case pipelineBlitOver:
		module, layout, entry = r.blit, r.blitPipeLayout, "fs_main"
		blend = gputypes.BlendStatePremultiplied()
	case pipelineBlitReplace:
		module, layout, entry = r.blit, r.blitPipeLayout, "fs_main"
	}

	p, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:       fmt.Sprintf("winloop_%s_%d", entry, kind),
		Layout:      layout,
		Vertex:      wgpu.VertexState{Module: module, EntryPoint: "vs_main"},
		Primitive:   wgpu.PrimitiveState{Topology: gputypes.PrimitiveTopologyTriangleList},
		Multisample: gputypes.DefaultMultisampleState(),
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: entry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline %s: %w", entry, err)
	}
	r.pipelines[key] = p
	return p, nil
}

// Execute implements Executor. All commands are encoded into one command
// buffer and submitted together.
func (r *GPURenderer) Execute(cmds []Command) error {
	if len(cmds) == 0 {
		return nil
	}
	r.frame++
	defer r.releaseTransient()

	enc, err := r.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "winloop_frame"})
	if err != nil {
		return fmt.Errorf("%w: create encoder: %w", winloop.ErrRender, err)
	}
	for i := range cmds {
		if err := r.encode(enc, &cmds[i]); err != nil {
			enc.DiscardEncoding()
			return fmt.Errorf("%w: %s: %w", winloop.ErrRender, cmds[i].Op, err)
		}
	}
	buf, err := enc.Finish()
	if err != nil {
		return fmt.Errorf("%w: finish: %w", winloop.ErrRender, err)
	}
	if _, err := r.queue.Submit(buf); err != nil {
		return fmt.Errorf("%w: submit: %w", winloop.ErrRender, err)
	}
	r.evictImages()
	return nil
}

func (r *GPURenderer) encode(enc *wgpu.CommandEncoder, cmd *Command) error {
	view, err := gpuView(cmd.Target)
	if err != nil {
		return err
	}
	bounds := Bounds(cmd.Target)
	vp := cmd.Viewport.Intersect(bounds)
	if vp.Empty() {
		return nil
	}

	if cmd.Op == OpClear && vp.Eq(bounds) {
		pass, err := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
			Label: "winloop_clear",
			ColorAttachments: []wgpu.RenderPassColorAttachment{{
				View:       view.View,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: clearColor(cmd.Color),
			}},
		})
		if err != nil {
			return err
		}
		return pass.End()
	}

	var (
		kind    pipelineKind
		group   *wgpu.BindGroup
		scissor = vp
	)
	switch cmd.Op {
	case OpClear:
		kind = pipelineFill
		group, err = r.shapeGroup(shapeUniform(bounds, bounds, cmd.Color, Point{}, 0))
	case OpCircle:
		kind = pipelineCircle
		quad := circleBounds(cmd.Center, cmd.Radius).Intersect(vp)
		if quad.Empty() {
			return nil
		}
		group, err = r.shapeGroup(shapeUniform(bounds, quad, cmd.Color, cmd.Center, cmd.Radius))
	case OpImage:
		kind = pipelineBlitOver
		scissor = vp.Intersect(cmd.Dst)
		if scissor.Empty() {
			return nil
		}
		var src *wgpu.TextureView
		if src, err = r.uploadImage(cmd.Image); err == nil {
			group, err = r.blitGroup(blitUniform(bounds, cmd.Dst), src)
		}
	case OpResolve:
		kind = pipelineBlitReplace
		var src *GPUView
		if src, err = gpuView(cmd.Source); err == nil {
			group, err = r.blitGroup(blitUniform(bounds, cmd.Dst), src.View)
		}
	default:
		return fmt.Errorf("unknown command %d", cmd.Op)
	}
	if err != nil {
		return err
	}
	pipeline, err := r.pipeline(kind, cmd.Target.Format())
	if err != nil {
		return err
	}

	pass, err := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "winloop_" + cmd.Op.String(),
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    view.View,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	})
	if err != nil {
		return err
	}
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, group, nil)
	//nolint:gosec // G115: scissor is clipped to the target bounds
	pass.SetScissorRect(uint32(scissor.Min.X), uint32(scissor.Min.Y), uint32(scissor.Dx()), uint32(scissor.Dy()))
	pass.Draw(6, 1, 0, 0)
	return pass.End()
}

func (r *GPURenderer) shapeGroup(data []byte) (*wgpu.BindGroup, error) {
	buf, err := r.uniformBuffer(data)
	if err != nil {
		return nil, err
	}
	g, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "winloop_shape_group",
		Layout:  r.shapeLayout,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: buf, Size: uint64(len(data))}},
	})
	if err != nil {
		return nil, err
	}
	r.transient = append(r.transient, g)
	return g, nil
}

func (r *GPURenderer) blitGroup(data []byte, src *wgpu.TextureView) (*wgpu.BindGroup, error) {
	buf, err := r.uniformBuffer(data)
	if err != nil {
		return nil, err
	}
	g, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "winloop_blit_group",
		Layout: r.blitLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Size: uint64(len(data))},
			{Binding: 1, TextureView: src},
			{Binding: 2, Sampler: r.sampler},
		},
	})
	if err != nil {
		return nil, err
	}
	r.transient = append(r.transient, g)
	return g, nil
}

func (r *GPURenderer) uniformBuffer(data []byte) (*wgpu.Buffer, error) {
	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "winloop_uniform",
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	r.transient = append(r.transient, buf)
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		return nil, err
	}
	return buf, nil
}

// uploadImage returns a sampled view of img, uploading it on first use.
func (r *GPURenderer) uploadImage(img image.Image) (*wgpu.TextureView, error) {
	rgba, cacheable := img.(*image.RGBA)
	if cacheable {
		if cached, ok := r.images[rgba]; ok {
			cached.lastUsed = r.frame
			return cached.view, nil
		}
	} else {
		rgba = toRGBAImage(img)
	}

	b := rgba.Bounds()
	//nolint:gosec // G115: image dimensions fit uint32
	size := wgpu.Extent3D{Width: uint32(b.Dx()), Height: uint32(b.Dy()), DepthOrArrayLayers: 1}
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "winloop_image",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create image texture: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &wgpu.TextureViewDescriptor{
		Label:         "winloop_image_view",
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("create image view: %w", err)
	}
	err = r.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		rgba.Pix,
		//nolint:gosec // G115: stride and height fit uint32
		&wgpu.ImageDataLayout{BytesPerRow: uint32(rgba.Stride), RowsPerImage: uint32(b.Dy())},
		&size,
	)
	if err != nil {
		view.Release()
		tex.Release()
		return nil, fmt.Errorf("upload image: %w", err)
	}

	if !cacheable {
		r.transient = append(r.transient, view, tex)
		return view, nil
	}
	r.images[rgba] = &gpuImage{tex: tex, view: view, lastUsed: r.frame}
	return view, nil
}

func (r *GPURenderer) evictImages() {
	for key, img := range r.images {
		if r.frame-img.lastUsed > imageCacheFrames {
			img.view.Release()
			img.tex.Release()
			delete(r.images, key)
		}
	}
}

func (r *GPURenderer) releaseTransient() {
	for i := len(r.transient) - 1; i >= 0; i-- {
		r.transient[i].Release()
	}
	clear(r.transient)
	r.transient = r.transient[:0]
}

// Capabilities implements Executor.
func (r *GPURenderer) Capabilities() Capabilities {
	return Capabilities{
		IsGPU:                true,
		SupportsAntialiasing: true,
		SupportsImages:       true,
		MaxTextureSize:       int(r.device.Limits().MaxTextureDimension2D),
	}
}

// Device returns the device the renderer draws with.
func (r *GPURenderer) Device() *wgpu.Device {
	return r.device
}

// Release destroys every GPU object owned by the renderer. It does not
// release the device.
func (r *GPURenderer) Release() {
	r.releaseTransient()
	for key, img := range r.images {
		img.view.Release()
		img.tex.Release()
		delete(r.images, key)
	}
	for key, p := range r.pipelines {
		p.Release()
		delete(r.pipelines, key)
	}
	for _, l := range []*wgpu.PipelineLayout{r.shapePipeLayout, r.blitPipeLayout} {
		if l != nil {
			l.Release()
		}
	}
	for _, l := range []*wgpu.BindGroupLayout{r.shapeLayout, r.blitLayout} {
		if l != nil {
			l.Release()
		}
	}
	if r.sampler != nil {
		r.sampler.Release()
	}
	for _, m := range []*wgpu.ShaderModule{r.shapes, r.blit} {
		if m != nil {
			m.Release()
		}
	}
	r.shapes, r.blit, r.sampler = nil, nil, nil
	r.shapeLayout, r.blitLayout = nil, nil
	r.shapePipeLayout, r.blitPipeLayout = nil, nil
}

// gpuView extracts the wgpu view of a GPU target.
func gpuView(t ColorTarget) (*GPUView, error) {
	if t == nil {
		return nil, errNilTarget
	}
	v, ok := t.TextureView().(*GPUView)
	if !ok || v == nil || v.View == nil {
		return nil, fmt.Errorf("%w: target does not support GPU rendering", winloop.ErrRender)
	}
	return v, nil
}

// ndc maps a pixel rectangle of a bounds-sized target to normalized device
// coordinates (y up).
func ndc(bounds, r image.Rectangle) [4]float32 {
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	return [4]float32{
		2*float32(r.Min.X)/w - 1,
		1 - 2*float32(r.Min.Y)/h,
		2*float32(r.Max.X)/w - 1,
		1 - 2*float32(r.Max.Y)/h,
	}
}

// circleBounds returns the pixel rectangle covering a circle plus one
// pixel of anti-aliasing.
func circleBounds(center Point, radius float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(center.X-radius-1)), int(math.Floor(center.Y-radius-1)),
		int(math.Ceil(center.X+radius+1)), int(math.Ceil(center.Y+radius+1)),
	)
}

func shapeUniform(bounds, quad image.Rectangle, c color.RGBA, center Point, radius float64) []byte {
	rect := ndc(bounds, quad)
	vals := [12]float32{
		rect[0], rect[1], rect[2], rect[3],
		float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255,
		float32(center.X), float32(center.Y), float32(radius), 0,
	}
	return packFloats(vals[:])
}

func blitUniform(bounds, dst image.Rectangle) []byte {
	rect := ndc(bounds, dst)
	vals := [8]float32{rect[0], rect[1], rect[2], rect[3], 0, 0, 1, 1}
	return packFloats(vals[:])
}

func packFloats(vals []float32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func clearColor(c color.RGBA) wgpu.Color {
	return wgpu.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}
}

var _ Executor = (*GPURenderer)(nil)
