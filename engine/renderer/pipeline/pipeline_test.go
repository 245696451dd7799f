package pipeline_test

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := pipeline.NewPipeline("lit")

	assert.Equal(t, "lit", p.PipelineKey())
	assert.Equal(t, "vs_main", p.VertexEntryPoint())
	assert.Equal(t, "fs_main", p.FragmentEntryPoint())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Nil(t, p.RenderPipeline())

	blend := p.BlendState()
	if assert.NotNil(t, blend) {
		assert.Equal(t, wgpu.BlendFactorSrcAlpha, blend.Color.SrcFactor)
		assert.Equal(t, wgpu.BlendFactorOneMinusSrcAlpha, blend.Color.DstFactor)
	}
}

func TestPipelineOptions(t *testing.T) {
	layout := wgpu.BindGroupLayoutDescriptor{Label: "frame"}
	vertex := wgpu.VertexBufferLayout{ArrayStride: 64}

	p := pipeline.NewPipeline("lit_transparent",
		pipeline.WithSource("@vertex fn main() {}"),
		pipeline.WithEntryPoints("vert", "frag"),
		pipeline.WithBindGroupLayouts(layout),
		pipeline.WithVertexLayouts(vertex),
		pipeline.WithBlendEnabled(true),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithCullMode(wgpu.CullModeBack),
	)

	assert.Equal(t, "@vertex fn main() {}", p.Source())
	assert.Equal(t, "vert", p.VertexEntryPoint())
	assert.Equal(t, "frag", p.FragmentEntryPoint())
	assert.Len(t, p.BindGroupLayouts(), 1)
	assert.Equal(t, uint64(64), p.VertexLayouts()[0].ArrayStride)
	assert.True(t, p.BlendEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.DepthTestEnabled())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
}

func TestReleaseWithoutPipeline(t *testing.T) {
	p := pipeline.NewPipeline("lit")
	assert.NotPanics(t, p.Release)
	assert.Nil(t, p.RenderPipeline())
}
