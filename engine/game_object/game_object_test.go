package game_object

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameObjectDefaults(t *testing.T) {
	g := NewGameObject(WithName("box"))

	assert.Equal(t, "box", g.Name())
	assert.True(t, g.Enabled())
	assert.Nil(t, g.Model())
	sx, sy, sz := g.Scale()
	assert.Equal(t, [3]float32{1, 1, 1}, [3]float32{sx, sy, sz})
}

func TestWithEnabledFalse(t *testing.T) {
	g := NewGameObject(WithEnabled(false))
	assert.False(t, g.Enabled())

	g.SetEnabled(true)
	assert.True(t, g.Enabled())
}

func TestAdvanceScalesWithFrameTime(t *testing.T) {
	g := NewGameObject(WithRotationSpeed(0.005, 0.005, 0.005))

	g.Advance(1.0 / 60)
	rx, ry, rz := g.Rotation()
	assert.InDelta(t, 0.005, rx, 1e-6)
	assert.InDelta(t, 0.005, ry, 1e-6)
	assert.InDelta(t, 0.005, rz, 1e-6)

	// one 30Hz frame covers two 60Hz frames
	g.Advance(1.0 / 30)
	rx, _, _ = g.Rotation()
	assert.InDelta(t, 0.015, rx, 1e-6)
}

func TestAdvanceWrapsAngles(t *testing.T) {
	g := NewGameObject(WithRotation(6.2, 0, 0), WithRotationSpeed(0.1, -0.1, 0))

	g.Advance(1.0 / 60)

	rx, ry, _ := g.Rotation()
	assert.InDelta(t, 6.3-2*math.Pi, rx, 1e-4)
	assert.InDelta(t, 2*math.Pi-0.1, ry, 1e-4)
}

func TestAdvanceZeroSpeedKeepsRotation(t *testing.T) {
	g := NewGameObject(WithRotation(1, 2, 3))

	g.Advance(0.5)

	rx, ry, rz := g.Rotation()
	assert.InDelta(t, 1, rx, 1e-5)
	assert.InDelta(t, 2, ry, 1e-5)
	assert.InDelta(t, 3, rz, 1e-5)
}

func TestModelMatrixTranslation(t *testing.T) {
	g := NewGameObject(WithPosition(0, 2, 0), WithScale(2, 2, 2))

	m := g.ModelMatrix()

	assert.Equal(t, float32(2), m[0])
	assert.Equal(t, float32(2), m[13])
	assert.Equal(t, float32(1), m[15])
}

func TestUniformMarshal(t *testing.T) {
	vertices, indices := model.BuildBox(1, 1, 1)
	g := NewGameObject(WithModel(model.NewModel(model.WithMesh(vertices, indices))), WithPosition(3, 0, 0))
	require.NotNil(t, g.Model())

	u := g.Uniform()
	require.Equal(t, 64, u.Size())
	buf := u.Marshal()
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[48:52])))
	assert.NotEmpty(t, GPUObjectUniformSource)
}
