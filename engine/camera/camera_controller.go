package camera

// CameraRig is the minimal surface the ground constraint needs from an orbit controller.
// Position and target are world-space points; the max polar angle bounds how far the
// camera may swing away from the world up-axis (0 = straight above the target).
type CameraRig interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// SetPosition sets the camera's world-space position directly.
	// The spherical parameterization is not refreshed until Update is called.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget moves the look-at/pivot point without touching the camera position.
	// The orbit radius and angles are re-derived on the next Update.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// MaxPolarAngle returns the upper bound on the angle between the camera offset and the up-axis.
	//
	// Returns:
	//   - float32: the bound in radians
	MaxPolarAngle() float32

	// SetMaxPolarAngle replaces the polar angle bound. It takes effect on the next Update.
	//
	// Parameters:
	//   - angle: the bound in radians
	SetMaxPolarAngle(angle float32)

	// Update re-derives radius, azimuth and elevation from the current position and target,
	// clamps them to the configured bounds and recomputes the position.
	Update()
}

// CameraController defines the union interface for camera control systems.
// Controllers own positional state (position, target). Camera reads from the controller
// and computes view/projection matrices. Orbit and planar controls work on the same
// instance, so a mouse drag and a keyboard pan can be mixed freely.
type CameraController interface {
	CameraRig
	orbitCameraController
	planarCameraController

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)
}

// orbitCameraController defines orbit-specific control methods using spherical coordinates
// (radius, azimuth, elevation) relative to the target.
type orbitCameraController interface {
	// Orbit rotates the camera around the target by a mouse drag delta in pixels.
	// The delta is scaled by MouseSensitivity.
	//
	// Parameters:
	//   - dx: horizontal drag distance
	//   - dy: vertical drag distance
	Orbit(dx, dy float32)

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step.
	OrbitDown()

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// MinRadius returns the minimum allowed orbit radius.
	MinRadius() float32

	// MaxRadius returns the maximum allowed orbit radius.
	MaxRadius() float32

	// Azimuth returns the current horizontal angle around the Y axis in radians.
	Azimuth() float32

	// SetAzimuth sets the horizontal angle directly and recomputes position.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the current vertical angle from the horizontal plane in radians.
	Elevation() float32

	// SetElevation sets the vertical angle directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// MinElevation returns the minimum allowed elevation angle. It mirrors the max polar angle.
	MinElevation() float32

	// MaxElevation returns the maximum allowed elevation angle.
	MaxElevation() float32

	// OrbitSpeed returns the keyboard orbit speed in radians per step.
	OrbitSpeed() float32

	// MouseSensitivity returns the radians of rotation per pixel of drag.
	MouseSensitivity() float32

	// ZoomSpeed returns the zoom speed multiplier.
	ZoomSpeed() float32
}

// planarCameraController translates position and target together along the camera's
// local axes, preserving the orbit relationship.
type planarCameraController interface {
	// PanRight translates the camera along its local right axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp translates the camera along its local up axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)

	// PanForward translates the camera along its local forward axis (dolly).
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)

	// PanSpeed returns the pan speed multiplier.
	PanSpeed() float32
}
