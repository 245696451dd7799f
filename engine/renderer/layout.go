package renderer

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/lit.wgsl
var litShaderBody string

// Bind group indices of the lit pipeline.
const (
	groupFrame   = 0
	groupDraw    = 1
	groupTexture = 2
)

// Binding indices inside the texture group.
const (
	bindingNormalMap     = 0
	bindingNormalSampler = 1
)

const (
	frameUniformSize = 144
	drawUniformSize  = 144
	vertexStride     = 64
)

const (
	opaquePipelineKey      = "lit_opaque"
	transparentPipelineKey = "lit_transparent"
)

// litShaderSource returns the complete lit shader: uniform structs, vertex input and the body.
func litShaderSource() string {
	return scene.UniformSources() + "\n" + model.GPUVertexSource + "\n" + litShaderBody
}

func uniformLayoutDescriptor(label string, size uint64) wgpu.BindGroupLayoutDescriptor {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = size
	return wgpu.BindGroupLayoutDescriptor{
		Label:   label,
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	}
}

func textureLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	tex := wgpu.BindGroupLayoutEntry{
		Binding:    bindingNormalMap,
		Visibility: wgpu.ShaderStageFragment,
	}
	tex.Texture.SampleType = wgpu.TextureSampleTypeFloat
	tex.Texture.ViewDimension = wgpu.TextureViewDimension2D

	samp := wgpu.BindGroupLayoutEntry{
		Binding:    bindingNormalSampler,
		Visibility: wgpu.ShaderStageFragment,
	}
	samp.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Normal Map Layout",
		Entries: []wgpu.BindGroupLayoutEntry{tex, samp},
	}
}

// litBindGroupLayouts returns the frame, draw and texture layouts in group order.
func litBindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	return []wgpu.BindGroupLayoutDescriptor{
		groupFrame:   uniformLayoutDescriptor("Frame Uniform Layout", frameUniformSize),
		groupDraw:    uniformLayoutDescriptor("Draw Uniform Layout", drawUniformSize),
		groupTexture: textureLayoutDescriptor(),
	}
}

// litVertexLayout matches model.GPUVertex.
func litVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: vertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 4},
		},
	}
}

// litPipelines describes the opaque pass and the alpha-blended pass. Transparent draws test
// against the opaque depth but do not write it.
func litPipelines() (opaque, transparent pipeline.Pipeline) {
	shared := []pipeline.PipelineBuilderOption{
		pipeline.WithSource(litShaderSource()),
		pipeline.WithBindGroupLayouts(litBindGroupLayouts()...),
		pipeline.WithVertexLayouts(litVertexLayout()),
	}
	opaque = pipeline.NewPipeline(opaquePipelineKey, shared...)
	transparent = pipeline.NewPipeline(transparentPipelineKey, append(shared,
		pipeline.WithBlendEnabled(true),
		pipeline.WithDepthWriteEnabled(false),
	)...)
	return opaque, transparent
}
