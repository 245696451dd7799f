package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog/log"
)

// flatNormalKey is the texture bound for draws without a normal map.
const flatNormalKey = "__flat_normal"

// SurfaceSource is the window a renderer presents to. window.Window satisfies it.
type SurfaceSource interface {
	// SurfaceDescriptor returns the platform surface descriptor for the window.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend

	opaque      pipeline.Pipeline
	transparent pipeline.Pipeline

	frame    bind_group_provider.BindGroupProvider
	meshes   map[string]bind_group_provider.BindGroupProvider
	objects  map[string]bind_group_provider.BindGroupProvider
	textures map[string]bind_group_provider.BindGroupProvider

	// Pre-creation config collected from builder options
	forceFallbackAdapter  bool
	presentMode           *PresentMode
	requestedSampleCount  MSAASampleCount
	supportedSampleCounts []MSAASampleCount
}

// Renderer draws the viewer scene with a single lit forward pass.
//
// Resources are registered by string key: meshes with InitMesh, normal maps with InitTexture and
// per-object uniforms on their first WriteObjectUniform. Draws pick the opaque or the
// alpha-blended pipeline and bind the frame uniform, the object uniform and a normal map.
type Renderer interface {
	scene.Renderer

	// SampleCount returns the MSAA sample count in effect after clamping to what the adapter
	// supports.
	//
	// Returns:
	//   - int: the sample count (1 when anti-aliasing is off)
	SampleCount() int

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Release releases every GPU resource the renderer created.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the GPU device for surface, configures the surface and registers the lit
// pipelines and default resources.
//
// Parameters:
//   - surface: the window to present to
//   - options: functional options applied before the device is created
//
// Returns:
//   - Renderer: the ready renderer
//   - error: error if no adapter or device is available or a pipeline fails to compile
func NewRenderer(surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.clampedSampleCount())
	if err != nil {
		return nil, err
	}
	r.backend = backend
	backend.ConfigureSurface(surface.Width(), surface.Height())

	if err := r.init(); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:                    &sync.Mutex{},
		meshes:                make(map[string]bind_group_provider.BindGroupProvider),
		objects:               make(map[string]bind_group_provider.BindGroupProvider),
		textures:              make(map[string]bind_group_provider.BindGroupProvider),
		requestedSampleCount:  MSAA4x,
		supportedSampleCounts: defaultSupportedSampleCounts,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// init registers the pipelines, the frame uniform and the flat normal map on a configured backend.
func (r *renderer) init() error {
	if r.presentMode != nil {
		r.backend.SetPresentMode(*r.presentMode)
	}

	r.opaque, r.transparent = litPipelines()
	for _, p := range []pipeline.Pipeline{r.opaque, r.transparent} {
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
	}

	r.frame = bind_group_provider.NewBindGroupProvider("Frame Uniform")
	if err := r.backend.InitUniformBindGroup(r.frame, groupFrame, frameUniformSize); err != nil {
		return fmt.Errorf("frame uniform: %w", err)
	}

	if err := r.InitTexture(flatNormalKey, common.FlatNormalTexture()); err != nil {
		return err
	}

	log.Info().
		Uint32("samples", uint32(r.backend.SampleCount())).
		Msg("renderer initialized")
	return nil
}

func (r *renderer) clampedSampleCount() MSAASampleCount {
	return ClampSampleCount(r.requestedSampleCount, r.supportedSampleCounts)
}

func (r *renderer) InitMesh(key string, vertexData, indexData []byte, indexCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider := bind_group_provider.NewBindGroupProvider(key)
	if err := r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount); err != nil {
		provider.Release()
		return fmt.Errorf("init mesh %s: %w", key, err)
	}
	if old, ok := r.meshes[key]; ok {
		old.Release()
	}
	r.meshes[key] = provider
	return nil
}

func (r *renderer) InitTexture(key string, tex common.TextureStagingData) error {
	if !tex.Valid() {
		return fmt.Errorf("init texture %s: invalid staging data (%dx%d, %d bytes)", key, tex.Width, tex.Height, len(tex.Pixels))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	provider := bind_group_provider.NewBindGroupProvider(key)
	if err := r.backend.InitTextureBindGroup(provider, tex); err != nil {
		provider.Release()
		return fmt.Errorf("init texture %s: %w", key, err)
	}
	if old, ok := r.textures[key]; ok {
		old.Release()
	}
	r.textures[key] = provider
	return nil
}

func (r *renderer) SetClearColor(red, green, blue float64) {
	r.backend.SetClearColor(wgpu.Color{R: red, G: green, B: blue, A: 1})
}

func (r *renderer) SetSampleCount(count int) {
	r.mu.Lock()
	r.requestedSampleCount = MSAASampleCount(max(count, 1))
	clamped := r.clampedSampleCount()
	r.mu.Unlock()

	if int(clamped) != count {
		log.Debug().Int("requested", count).Uint32("samples", uint32(clamped)).Msg("sample count clamped")
	}
	r.backend.SetSampleCount(clamped)
}

func (r *renderer) SampleCount() int {
	return int(r.backend.SampleCount())
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Resize(width, height int) {
	r.backend.Resize(width, height)
}

func (r *renderer) WriteFrameUniform(data []byte) {
	r.backend.WriteBuffer(r.frame, 0, data)
}

func (r *renderer) WriteObjectUniform(key string, data []byte) error {
	r.mu.Lock()
	provider, ok := r.objects[key]
	if !ok {
		provider = bind_group_provider.NewBindGroupProvider(key)
		if err := r.backend.InitUniformBindGroup(provider, groupDraw, drawUniformSize); err != nil {
			r.mu.Unlock()
			provider.Release()
			return fmt.Errorf("object uniform %s: %w", key, err)
		}
		r.objects[key] = provider
	}
	r.mu.Unlock()

	r.backend.WriteBuffer(provider, 0, data)
	return nil
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) Draw(call scene.DrawCall) error {
	r.mu.Lock()
	mesh, ok := r.meshes[call.Mesh]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("draw %s: unknown mesh %q", call.Object, call.Mesh)
	}
	object, ok := r.objects[call.Object]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("draw %s: object uniform not written", call.Object)
	}
	textureKey := call.NormalTexture
	if textureKey == "" {
		textureKey = flatNormalKey
	}
	texture, ok := r.textures[textureKey]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("draw %s: unknown texture %q", call.Object, call.NormalTexture)
	}

	p := r.opaque
	if call.Transparent {
		p = r.transparent
	}

	bindGroups := make([]bind_group_provider.BindGroupProvider, 3)
	bindGroups[groupFrame] = r.frame
	bindGroups[groupDraw] = object
	bindGroups[groupTexture] = texture
	return r.backend.DrawCall(p, mesh, bindGroups)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, group := range []map[string]bind_group_provider.BindGroupProvider{r.meshes, r.objects, r.textures} {
		for k, p := range group {
			p.Release()
			delete(group, k)
		}
	}
	if r.frame != nil {
		r.frame.Release()
	}
	r.backend.Release()
}
