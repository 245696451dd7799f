package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// requireOutwardWinding checks every triangle winds counter-clockwise around its vertex normal.
func requireOutwardWinding(t *testing.T, vertices []GPUVertex, indices []uint32) {
	t.Helper()
	require.Zero(t, len(indices)%3)
	for i := 0; i < len(indices); i += 3 {
		a, b, c := vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]
		n := cross(common.Sub3(b.Position, a.Position), common.Sub3(c.Position, a.Position))
		assert.Greater(t, dot(n, a.Normal), float32(0), "triangle %d", i/3)
	}
}

func TestBuildBox(t *testing.T) {
	vertices, indices := BuildBox(2, 3, 2)

	require.Len(t, vertices, 24)
	require.Len(t, indices, 36)
	requireOutwardWinding(t, vertices, indices)

	for _, v := range vertices {
		assert.InDelta(t, 1, math.Abs(float64(v.Position[0])), 1e-6)
		assert.InDelta(t, 1.5, math.Abs(float64(v.Position[1])), 1e-6)
		assert.InDelta(t, 1, math.Abs(float64(v.Position[2])), 1e-6)
		assert.InDelta(t, 1, common.Length3(v.Normal), 1e-6)
		assert.Zero(t, dot(v.Normal, [3]float32{v.Tangent[0], v.Tangent[1], v.Tangent[2]}))
		assert.GreaterOrEqual(t, v.TexCoord[0], float32(0))
		assert.LessOrEqual(t, v.TexCoord[1], float32(1))
	}
}

func TestBuildBoxVertexOnFaceSide(t *testing.T) {
	vertices, _ := BuildBox(2, 3, 2)

	for _, v := range vertices {
		assert.Greater(t, dot(v.Position, v.Normal), float32(0))
	}
}

func TestBuildPlane(t *testing.T) {
	vertices, indices := BuildPlane(10, 10)

	require.Len(t, vertices, 4)
	require.Len(t, indices, 6)
	requireOutwardWinding(t, vertices, indices)

	for _, v := range vertices {
		assert.Equal(t, float32(0), v.Position[1])
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
		assert.InDelta(t, 5, math.Abs(float64(v.Position[0])), 1e-6)
		assert.InDelta(t, 5, math.Abs(float64(v.Position[2])), 1e-6)
	}
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		Tangent:  [4]float32{0, 0, 0, -1},
	}

	require.Equal(t, 64, v.Size())
	buf := v.Marshal()
	require.Len(t, buf, 64)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(buf[60:64])))
	assert.NotEmpty(t, GPUVertexSource)
}

func TestMarshalVerticesMatchesMarshal(t *testing.T) {
	vertices, _ := BuildBox(1, 1, 1)

	buf := MarshalVertices(vertices)

	require.Len(t, buf, 24*64)
	assert.Equal(t, vertices[5].Marshal(), buf[5*64:6*64])
}

func TestNewModelWithMesh(t *testing.T) {
	vertices, indices := BuildBox(2, 3, 2)
	mat := material.NewMaterial(material.WithName("box"))

	m := NewModel(WithName("box"), WithMesh(vertices, indices), WithMaterial(mat))

	assert.Equal(t, "box", m.Name())
	assert.Equal(t, 36, m.IndexCount())
	assert.Len(t, m.VertexData(), 24*64)
	assert.Len(t, m.IndexData(), 36*4)
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(m.IndexData()[20:24]))
	assert.InDelta(t, math.Sqrt(1+2.25+1), m.BoundingRadius(), 1e-5)
	assert.Same(t, mat, m.Material())
}
