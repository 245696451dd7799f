package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrSurfaceUnavailable is returned by BeginFrame while the surface has no area, e.g. when the
// window is minimized.
var ErrSurfaceUnavailable = errors.New("surface has zero size")

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat    wgpu.TextureFormat
	width, height    int
	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView
	clearColor       wgpu.Color

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	// surfaceDirty and pipelinesDirty are set by Resize, SetPresentMode and SetSampleCount,
	// which may be called from the window thread, and applied by the next BeginFrame.
	surfaceDirty   bool
	pipelinesDirty bool

	layouts   []*wgpu.BindGroupLayout
	pipelines []pipeline.Pipeline

	// Frame state for batching every draw of a frame into one render pass
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	// ConfigureSurface configures the surface and render targets for a size immediately.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// Resize records a new surface size; the next BeginFrame reconfigures.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode; the next BeginFrame reconfigures.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SampleCount returns the MSAA sample count of the render targets.
	SampleCount() MSAASampleCount

	// SetSampleCount changes the MSAA sample count. The next BeginFrame recreates the render
	// targets and every registered pipeline.
	//
	// Parameters:
	//   - count: the sample count, already clamped to what the adapter supports
	SetSampleCount(count MSAASampleCount)

	// SetClearColor sets the color the render pass clears to.
	SetClearColor(c wgpu.Color)

	// RegisterRenderPipeline creates the shader module, pipeline layout and render pipeline
	// described by p and remembers p so it can be recreated for a new sample count.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if the pipeline could not be created, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers creates and fills the vertex and index buffers of a mesh.
	//
	// Parameters:
	//   - provider: receives the buffers
	//   - vertexData: packed vertices
	//   - indexData: packed uint32 indices
	//   - indexCount: the number of indices drawn
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitUniformBindGroup creates a uniform buffer at binding 0 and its bind group for the
	// given group of the lit layout.
	//
	// Parameters:
	//   - provider: receives the buffer and bind group
	//   - group: the bind group index
	//   - size: the uniform size in bytes
	//
	// Returns:
	//   - error: an error if the buffer or bind group cannot be created
	InitUniformBindGroup(provider bind_group_provider.BindGroupProvider, group int, size uint64) error

	// InitTextureBindGroup uploads a linear RGBA texture, creates a repeating sampler and binds
	// both in the texture group of the lit layout.
	//
	// Parameters:
	//   - provider: receives the texture, sampler and bind group
	//   - stagingData: the pixels to upload
	//
	// Returns:
	//   - error: an error if any resource cannot be created
	InitTextureBindGroup(provider bind_group_provider.BindGroupProvider, stagingData common.TextureStagingData) error

	// WriteBuffer writes data at offset 0 of the provider's buffer at binding.
	WriteBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte)

	// BeginFrame applies pending surface changes, acquires the next surface texture and opens
	// the render pass.
	//
	// Returns:
	//   - error: ErrSurfaceUnavailable while minimized, or an acquisition error
	BeginFrame() error

	// DrawCall records one indexed draw into the open render pass.
	//
	// Parameters:
	//   - p: the pipeline to draw with
	//   - meshProvider: holds the vertex and index buffers
	//   - bindGroups: one provider per bind group index
	//
	// Returns:
	//   - error: an error if no frame is open or the pipeline is not created
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame closes the render pass and submits the frame's commands.
	EndFrame()

	// Present displays the acquired surface texture.
	Present()

	// Release releases the render targets, layouts, pipelines and device.
	Release()
}

var _ wgpuRendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (wgpuRendererBackend, error) {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

// preferredSurfaceFormat picks an sRGB format so the shader's linear output is encoded on store.
func preferredSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb {
			return f
		}
	}
	if len(formats) == 0 {
		return wgpu.TextureFormatBGRA8UnormSrgb
	}
	return formats[0]
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.width, b.height = width, height
	if err := b.configure(); err != nil {
		panic(err)
	}
	b.surfaceDirty = false
}

// configure applies the current size, present mode and sample count. Callers hold mu.
func (b *wgpuRendererBackendImpl) configure() error {
	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = preferredSurfaceFormat(capabilities.Formats)
	if b.width <= 0 || b.height <= 0 {
		return nil
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(b.width),
		Height:      uint32(b.height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()
	count := uint32(b.sampleCount)

	if count > 1 {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		tex, view, err := b.createTarget("MSAA Texture", b.surfaceFormat, count)
		if err != nil {
			return err
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// Depth texture sample count must match the color attachment.
	tex, view, err := b.createTarget("Depth Texture", wgpu.TextureFormatDepth24Plus, count)
	if err != nil {
		return err
	}
	b.depthTexture, b.depthTextureView = tex, view
	return nil
}

func (b *wgpuRendererBackendImpl) createTarget(label string, format wgpu.TextureFormat, sampleCount uint32) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(b.width),
			Height:             uint32(b.height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return tex, view, nil
}

func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
		b.msaaTextureView, b.msaaTexture = nil, nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTexture.Release()
		b.depthTextureView, b.depthTexture = nil, nil
	}
}

func (b *wgpuRendererBackendImpl) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	b.surfaceDirty = true
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
	b.surfaceDirty = true
}

func (b *wgpuRendererBackendImpl) SampleCount() MSAASampleCount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sampleCount
}

func (b *wgpuRendererBackendImpl) SetSampleCount(count MSAASampleCount) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if count == b.sampleCount {
		return
	}
	b.sampleCount = count
	b.surfaceDirty = true
	b.pipelinesDirty = true
}

func (b *wgpuRendererBackendImpl) SetClearColor(c wgpu.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearColor = c
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.createRenderPipeline(p); err != nil {
		return err
	}
	for _, existing := range b.pipelines {
		if existing == p {
			return nil
		}
	}
	b.pipelines = append(b.pipelines, p)
	return nil
}

// ensureLayouts creates the shared bind group layouts on first use. Callers hold mu.
func (b *wgpuRendererBackendImpl) ensureLayouts(descriptors []wgpu.BindGroupLayoutDescriptor) error {
	if b.layouts != nil {
		return nil
	}
	layouts := make([]*wgpu.BindGroupLayout, len(descriptors))
	for g := range descriptors {
		layout, err := b.device.CreateBindGroupLayout(&descriptors[g])
		if err != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, err)
		}
		layouts[g] = layout
	}
	b.layouts = layouts
	return nil
}

// createRenderPipeline builds the GPU pipeline for the current surface format and sample count.
// Callers hold mu.
func (b *wgpuRendererBackendImpl) createRenderPipeline(p pipeline.Pipeline) error {
	if p.Source() == "" {
		return fmt.Errorf("pipeline %s has no shader source", p.PipelineKey())
	}
	if err := b.ensureLayouts(p.BindGroupLayouts()); err != nil {
		return err
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.PipelineKey() + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline %s shader: %w", p.PipelineKey(), err)
	}
	defer module.Release()

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: b.layouts,
	})
	if err != nil {
		return fmt.Errorf("pipeline %s layout: %w", p.PipelineKey(), err)
	}
	defer pipelineLayout.Release()

	target := wgpu.ColorTargetState{
		Format:    b.surfaceFormat,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntryPoint(),
			Buffers:    p.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline %s: %w", p.PipelineKey(), err)
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("mesh %s has no geometry", provider.Label())
	}

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(vb, 0, vertexData)
	provider.SetVertexBuffer(vb)

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(ib, 0, indexData)
	provider.SetIndexBuffer(ib)

	provider.SetIndexCount(indexCount)
	return nil
}

func (b *wgpuRendererBackendImpl) InitUniformBindGroup(provider bind_group_provider.BindGroupProvider, group int, size uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if group >= len(b.layouts) {
		return fmt.Errorf("bind group %d has no layout; register a pipeline first", group)
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	provider.SetBuffer(0, buf)

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " Bind Group",
		Layout: b.layouts[group],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) InitTextureBindGroup(provider bind_group_provider.BindGroupProvider, stagingData common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if groupTexture >= len(b.layouts) {
		return errors.New("texture group has no layout; register a pipeline first")
	}

	// Normal maps hold vectors, not colors, so the texture is not sRGB.
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     provider.Label() + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	provider.SetTexture(bindingNormalMap, tex, view)

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return err
	}
	provider.SetSampler(bindingNormalSampler, samp)

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  provider.Label() + " Bind Group",
		Layout: b.layouts[groupTexture],
		Entries: []wgpu.BindGroupEntry{
			{Binding: bindingNormalMap, TextureView: view},
			{Binding: bindingNormalSampler, Sampler: samp},
		},
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffer(provider bind_group_provider.BindGroupProvider, binding int, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf := provider.Buffer(binding)
	if buf == nil {
		return
	}
	b.queue.WriteBuffer(buf, 0, data)
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Acquiring a second surface texture before presenting the first is a validation error.
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}
	if b.width <= 0 || b.height <= 0 {
		return ErrSurfaceUnavailable
	}

	if b.surfaceDirty {
		if err := b.configure(); err != nil {
			return err
		}
		b.surfaceDirty = false
	}
	if b.pipelinesDirty {
		for _, p := range b.pipelines {
			if err := b.createRenderPipeline(p); err != nil {
				return err
			}
		}
		b.pipelinesDirty = false
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	// With MSAA the pass draws into the multisampled target and resolves into the swapchain
	// view; without it the swapchain view is drawn directly.
	color := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: b.clearColor,
	}
	if b.sampleCount > 1 {
		color.View = b.msaaTextureView
		color.ResolveTarget = view
		color.StoreOp = wgpu.StoreOpDiscard
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(
	p pipeline.Pipeline,
	meshProvider bind_group_provider.BindGroupProvider,
	bindGroups []bind_group_provider.BindGroupProvider,
) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return errors.New("draw outside of a frame")
	}
	renderPipeline := p.RenderPipeline()
	if renderPipeline == nil {
		return fmt.Errorf("pipeline %s is not created", p.PipelineKey())
	}

	b.framePass.SetPipeline(renderPipeline)
	for i, bg := range bindGroups {
		b.framePass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}

	b.framePass.SetVertexBuffer(0, meshProvider.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(meshProvider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(meshProvider.IndexCount()), 1, 0, 0, 0)
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	b.frameView.Release()
	b.frameView = nil
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil
	for _, l := range b.layouts {
		l.Release()
	}
	b.layouts = nil
	b.releaseTargets()

	b.queue = nil
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
