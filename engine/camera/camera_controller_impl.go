package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
)

// cameraControllerImpl is the single implementation of CameraController.
// Orbit methods modify spherical coordinates and recompute position; planar methods
// translate position and target together; SetPosition/SetTarget write the raw points
// and leave it to Update to bring the spherical state back in sync.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	// offset from target
	radius    float32
	azimuth   float32 // around +Y, 0 = +Z
	elevation float32 // from the horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32 // pi/2 - maxPolarAngle
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32

	panSpeed float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller looking at the origin from a
// slightly raised position. The default polar bound lets the camera reach the horizon.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    10.0,
		azimuth:   math32.Pi / 6,
		elevation: math32.Pi / 8,

		minRadius:    1.0,
		maxRadius:    100.0,
		minElevation: 0,
		maxElevation: math32.Pi/2 - 0.01,

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        1.0,

		panSpeed: 0.02,
	}

	for _, option := range options {
		option(cc)
	}

	cc.clampSpherical()
	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.elevation)
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

// clampSpherical limits radius and elevation to their bounds.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) clampSpherical() {
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	lo := cc.minElevation
	if lo > cc.maxElevation {
		lo = cc.maxElevation
	}
	cc.elevation = common.Clamp(cc.elevation, lo, cc.maxElevation)
}

// localAxes computes the camera's right, up and forward axes consistent with common.LookAt.
// All axes are zero if position and target coincide.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up, forward [3]float32) {
	back := common.Sub3(cc.position, cc.target)
	if common.Length3(back) < 1e-8 {
		return
	}
	back = common.Normalize3(back)

	// cross(worldUp, back) with worldUp = +Y
	right = common.Normalize3([3]float32{back[2], 0, -back[0]})
	if right == ([3]float32{}) {
		return
	}

	up = [3]float32{
		back[1]*right[2] - back[2]*right[1],
		back[2]*right[0] - back[0]*right[2],
		back[0]*right[1] - back[1]*right[0],
	}
	forward = [3]float32{-back[0], -back[1], -back[2]}
	return
}

// translate shifts both position and target by axis * amount.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) translate(axis [3]float32, amount float32) {
	for i := range 3 {
		cc.target[i] += axis[i] * amount
		cc.position[i] += axis[i] * amount
	}
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = [3]float32{x, y, z}
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
}

func (cc *cameraControllerImpl) MaxPolarAngle() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return math32.Pi/2 - cc.minElevation
}

func (cc *cameraControllerImpl) SetMaxPolarAngle(angle float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.minElevation = math32.Pi/2 - angle
}

func (cc *cameraControllerImpl) Update() {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	offset := common.Sub3(cc.position, cc.target)
	if r := common.Length3(offset); r > 1e-6 {
		cc.radius = r
		cc.azimuth = math32.Atan2(offset[0], offset[2])
		cc.elevation = math32.Asin(common.Clamp(offset[1]/r, -1, 1))
	}
	cc.clampSpherical()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius -= delta * cc.zoomSpeed
	cc.clampSpherical()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Orbit(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= dx * cc.mouseSensitivity
	cc.elevation += dy * cc.mouseSensitivity
	cc.clampSpherical()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation += cc.orbitSpeed
	cc.clampSpherical()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation -= cc.orbitSpeed
	cc.clampSpherical()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = radius
	cc.clampSpherical()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius
}

func (cc *cameraControllerImpl) MaxRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxRadius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = elevation
	cc.clampSpherical()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxElevation
}

func (cc *cameraControllerImpl) OrbitSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbitSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _, _ := cc.localAxes()
	cc.translate(right, delta*cc.panSpeed)
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up, _ := cc.localAxes()
	cc.translate(up, delta*cc.panSpeed)
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, _, forward := cc.localAxes()
	cc.translate(forward, delta*cc.panSpeed)
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}
