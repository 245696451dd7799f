package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial(WithName("plain"))

	assert.Equal(t, "plain", m.Name())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.BaseColor())
	assert.Equal(t, float32(1), m.Roughness())
	assert.False(t, m.Transparent())
	assert.Empty(t, m.NormalTexture())
}

func TestSetPhysicalCopiesPanel(t *testing.T) {
	p := settings.Default().Box.Physical
	p.Color = "#ff0000"
	p.Metalness = 0.7
	p.Roughness = 0.2
	p.Opacity = 0.5

	m := NewMaterial(WithPhysical(p))

	base := m.BaseColor()
	assert.InDelta(t, 1, base[0], 1e-6)
	assert.InDelta(t, 0, base[1], 1e-6)
	assert.Equal(t, float32(0.5), base[3])
	assert.Equal(t, float32(0.7), m.Metallic())
	assert.Equal(t, float32(0.2), m.Roughness())
	assert.True(t, m.Transparent(), "opacity below one forces blending")
}

func TestTransparentFlagWithFullOpacity(t *testing.T) {
	p := settings.Default().Ground.Physical
	p.Transparent = true

	m := NewMaterial(WithPhysical(p))
	assert.True(t, m.Transparent())

	p.Transparent = false
	m.SetPhysical(p)
	assert.False(t, m.Transparent())
}

func TestUVOffsetWraps(t *testing.T) {
	m := NewMaterial()

	m.SetUVOffset(1.25, -0.25)

	off := m.UVOffset()
	assert.InDelta(t, 0.25, off[0], 1e-6)
	assert.InDelta(t, 0.75, off[1], 1e-6)
}

func TestUniformNormalMapNeedsTexture(t *testing.T) {
	bare := NewMaterial()
	bare.SetNormalMap(true, 100)
	assert.Equal(t, uint32(0), bare.Uniform().UseNormalMap)

	mapped := NewMaterial(WithNormalTexture("ground/normal"))
	mapped.SetNormalMap(true, 100)
	u := mapped.Uniform()
	assert.Equal(t, uint32(1), u.UseNormalMap)
	assert.Equal(t, float32(100), u.NormalRepeat)

	mapped.SetNormalMap(false, 100)
	assert.Equal(t, uint32(0), mapped.Uniform().UseNormalMap)
}

func TestGPUMaterialUniformMarshal(t *testing.T) {
	p := settings.Default().Box.Physical
	p.IOR = 2
	m := NewMaterial(WithPhysical(p), WithNormalTexture("n"))
	m.SetNormalMap(true, 4)
	m.SetUVOffset(0.5, 0)

	u := m.Uniform()
	require.Equal(t, 80, u.Size())
	buf := u.Marshal()
	require.Len(t, buf, 80)

	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
	}
	assert.Equal(t, float32(1), f(12), "opacity")
	assert.Equal(t, p.Metalness, f(32))
	assert.Equal(t, float32(2), f(60))
	assert.Equal(t, float32(0.5), f(64))
	assert.Equal(t, float32(4), f(72))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[76:80]))
	assert.NotEmpty(t, GPUMaterialUniformSource)
}
