package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_UpdateFollowsController(t *testing.T) {
	cc := NewCameraController(WithTarget(0, 0, 0), WithRadius(5), WithAzimuth(0), WithElevation(0))
	c := NewCamera(WithController(cc), WithAspect(2))

	view := c.ViewMatrix()
	// eye at (0,0,5) looking down -Z: translation z = -5
	assert.InDelta(t, -5, float64(view[14]), 1e-5)

	cc.SetRadius(10)
	c.Update()
	view = c.ViewMatrix()
	assert.InDelta(t, -10, float64(view[14]), 1e-5)
}

func TestCamera_SetFovRebuildsProjection(t *testing.T) {
	c := NewCamera(WithController(NewCameraController()), WithAspect(1))

	c.SetFov(math.Pi / 2)

	proj := c.ProjectionMatrix()
	assert.InDelta(t, 1, float64(proj[5]), 1e-5)
	assert.InDelta(t, 1, float64(proj[0]), 1e-5)
	assert.Equal(t, float32(-1), proj[11])
}

func TestCamera_WithoutControllerKeepsIdentity(t *testing.T) {
	c := NewCamera()
	c.Update()

	assert.Nil(t, c.Controller())
	assert.Equal(t, float32(1), c.ViewProjectionMatrix()[0])
	assert.Equal(t, [3]float32{}, c.Uniform().CameraPosition)
}

func TestGPUCameraUniform_Marshal(t *testing.T) {
	cc := NewCameraController(WithTarget(0, 0, 0), WithRadius(5), WithAzimuth(0), WithElevation(0))
	c := NewCamera(WithController(cc))

	u := c.Uniform()
	buf := u.Marshal()

	require.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())
	z := math.Float32frombits(binary.LittleEndian.Uint32(buf[72:]))
	assert.InDelta(t, 5, float64(z), 1e-5)
	assert.Equal(t, u.ViewProj[0], math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
}
