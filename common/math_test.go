package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

// transform multiplies the column-major matrix m with the point (x, y, z, 1).
func transform(m []float32, x, y, z float32) [4]float32 {
	var out [4]float32
	for row := range 4 {
		out[row] = m[row]*x + m[4+row]*y + m[8+row]*z + m[12+row]
	}
	return out
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes[float32](nil))

	b := SliceToBytes([]float32{1, 2, 3})
	assert.Len(t, b, 12)
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, b[:4], "1.0 little endian")
}

func TestMul4_Identity(t *testing.T) {
	id := Identity()
	m := make([]float32, 16)
	for i := range m {
		m[i] = float32(i + 1)
	}

	out := make([]float32, 16)
	Mul4(out, id[:], m)
	assert.Equal(t, m, out)

	Mul4(m, m, id[:])
	assert.Equal(t, out, m, "out may alias an input")
}

func TestPerspective_DepthRange(t *testing.T) {
	p := make([]float32, 16)
	Perspective(p, math32.Pi/2, 2, 0.1, 100)

	assert.InDelta(t, 0.5, p[0], 1e-6)
	assert.InDelta(t, 1, p[5], 1e-6)
	assert.Equal(t, float32(-1), p[11])
	assert.Equal(t, float32(0), p[15])

	near := transform(p, 0, 0, -0.1)
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)

	far := transform(p, 0, 0, -100)
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)
}

func TestBuildModelMatrix(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, [3]float32{1, 2, 3}, [3]float32{}, [3]float32{2, 2, 2})

	p := transform(m, 1, 1, 1)
	assert.InDeltaSlice(t, []float32{3, 4, 5, 1}, p[:], 1e-6)

	BuildModelMatrix(m, [3]float32{}, [3]float32{0, math32.Pi / 2, 0}, [3]float32{1, 1, 1})
	p = transform(m, 1, 0, 0)
	assert.InDeltaSlice(t, []float32{0, 0, -1, 1}, p[:], 1e-6, "+X turns to -Z around +Y")
}

func TestLookAt(t *testing.T) {
	v := make([]float32, 16)
	LookAt(v, 0, 0, 5, 0, 0, 0, 0, 1, 0)

	eye := transform(v, 0, 0, 5)
	assert.InDeltaSlice(t, []float32{0, 0, 0, 1}, eye[:], 1e-6)

	center := transform(v, 0, 0, 0)
	assert.InDeltaSlice(t, []float32{0, 0, -5, 1}, center[:], 1e-6, "view looks down -Z")
}
