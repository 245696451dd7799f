package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func position(cc CameraController) [3]float32 {
	x, y, z := cc.Position()
	return [3]float32{x, y, z}
}

func TestNewCameraController_PlacesCameraOnSphere(t *testing.T) {
	cc := NewCameraController(WithTarget(1, 2, 3), WithRadius(5), WithAzimuth(0), WithElevation(0))

	p := position(cc)
	assert.InDelta(t, 1, float64(p[0]), 1e-5)
	assert.InDelta(t, 2, float64(p[1]), 1e-5)
	assert.InDelta(t, 8, float64(p[2]), 1e-5)
}

func TestSetTarget_DoesNotMoveCamera(t *testing.T) {
	cc := NewCameraController()
	before := position(cc)

	cc.SetTarget(4, 1, 4)

	assert.Equal(t, before, position(cc))
	tx, ty, tz := cc.Target()
	assert.Equal(t, [3]float32{4, 1, 4}, [3]float32{tx, ty, tz})
}

func TestUpdate_RederivesSphericalCoordinates(t *testing.T) {
	cc := NewCameraController()

	cc.SetPosition(0, 0, 5)
	cc.Update()

	assert.InDelta(t, 5, float64(cc.Radius()), 1e-5)
	assert.InDelta(t, 0, float64(cc.Azimuth()), 1e-5)
	assert.InDelta(t, 0, float64(cc.Elevation()), 1e-5)

	cc.SetPosition(5, 5, 0)
	cc.Update()
	assert.InDelta(t, math.Pi/2, float64(cc.Azimuth()), 1e-5)
	assert.InDelta(t, math.Pi/4, float64(cc.Elevation()), 1e-5)
}

func TestSetMaxPolarAngle_ClampsElevationOnUpdate(t *testing.T) {
	cc := NewCameraController()
	cc.SetPosition(0, 0, 5)

	cc.SetMaxPolarAngle(math.Pi/2 - 0.5)
	assert.InDelta(t, math.Pi/2-0.5, float64(cc.MaxPolarAngle()), 1e-6)
	assert.InDelta(t, 0.5, float64(cc.MinElevation()), 1e-6)

	cc.Update()
	p := position(cc)
	assert.InDelta(t, 5*math.Sin(0.5), float64(p[1]), 1e-4)
	assert.InDelta(t, 5, float64(cc.Radius()), 1e-5)
}

func TestUpdate_ClampsRadius(t *testing.T) {
	cc := NewCameraController(WithRadiusBounds(2, 20))

	cc.SetPosition(0, 1, 0.5)
	cc.Update()
	assert.InDelta(t, 2, float64(cc.Radius()), 1e-5)

	cc.SetPosition(0, 10, 100)
	cc.Update()
	assert.InDelta(t, 20, float64(cc.Radius()), 1e-5)
}

func TestUpdate_CoincidentPointsKeepPreviousOrbit(t *testing.T) {
	cc := NewCameraController(WithRadius(6))
	cc.SetPosition(0, 0, 0)

	cc.Update()

	assert.InDelta(t, 6, float64(cc.Radius()), 1e-5)
	assert.InDelta(t, 6, float64(len3(position(cc))), 1e-4)
}

func TestOrbit_UsesMouseSensitivity(t *testing.T) {
	cc := NewCameraController(WithAzimuth(0), WithElevation(0.2), WithMouseSensitivity(0.01))

	cc.Orbit(10, 5)

	assert.InDelta(t, -0.1, float64(cc.Azimuth()), 1e-6)
	assert.InDelta(t, 0.25, float64(cc.Elevation()), 1e-6)
}

func TestOrbit_RespectsElevationBounds(t *testing.T) {
	cc := NewCameraController(WithMaxElevation(1.0))

	cc.Orbit(0, 1e6)
	assert.InDelta(t, 1.0, float64(cc.Elevation()), 1e-6)

	cc.Orbit(0, -1e6)
	assert.InDelta(t, 0, float64(cc.Elevation()), 1e-6)
}

func TestZoom_ClampsToBounds(t *testing.T) {
	cc := NewCameraController(WithRadius(10), WithRadiusBounds(1, 50), WithZoomSpeed(2))

	cc.Zoom(2)
	assert.InDelta(t, 6, float64(cc.Radius()), 1e-6)

	cc.Zoom(100)
	assert.InDelta(t, 1, float64(cc.Radius()), 1e-6)

	cc.Zoom(-100)
	assert.InDelta(t, 50, float64(cc.Radius()), 1e-6)
}

func TestPan_MovesPositionAndTargetTogether(t *testing.T) {
	cc := NewCameraController(WithAzimuth(0), WithElevation(0), WithRadius(5), WithPanSpeed(1))

	cc.PanRight(2)

	p := position(cc)
	tx, ty, tz := cc.Target()
	assert.InDelta(t, 2, float64(tx), 1e-5)
	assert.InDelta(t, 0, float64(ty), 1e-5)
	assert.InDelta(t, 0, float64(tz), 1e-5)
	assert.InDelta(t, 2, float64(p[0]), 1e-5)
	assert.InDelta(t, 5, float64(p[2]), 1e-5)

	cc.PanForward(1)
	_, _, tz = cc.Target()
	assert.InDelta(t, -1, float64(tz), 1e-5)

	cc.PanUp(1)
	_, ty, _ = cc.Target()
	assert.InDelta(t, 1, float64(ty), 1e-5)
}

func len3(v [3]float32) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}
