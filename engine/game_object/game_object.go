package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/chewxy/math32"
)

type gameObject struct {
	name    string
	enabled atomic.Bool
	mdl     model.Model

	position      [3]float32
	scale         [3]float32
	rotation      [3]float32
	rotationSpeed [3]float32
}

// GameObject defines the interface for a scene entity: a model placed in the world with a
// transform and an optional constant spin.
// Transform state is owned by the render goroutine.
type GameObject interface {
	// Name returns the object's identifier, also used as its renderer draw key.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the Model associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Position returns the world-space position.
	Position() (x, y, z float32)

	// Rotation returns the Euler rotation in radians.
	Rotation() (rx, ry, rz float32)

	// RotationSpeed returns the rotation added per 60Hz frame on each axis, in radians.
	RotationSpeed() (rx, ry, rz float32)

	// Scale returns the scale factors.
	Scale() (sx, sy, sz float32)

	// SetEnabled enables or disables rendering of this object.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel replaces the object's model.
	//
	// Parameters:
	//   - m: the model to draw
	SetModel(m model.Model)

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation around x, y and z
	SetRotation(rx, ry, rz float32)

	// SetRotationSpeed sets the rotation added per 60Hz frame on each axis.
	//
	// Parameters:
	//   - rx, ry, rz: speed in radians per 60Hz frame
	SetRotationSpeed(rx, ry, rz float32)

	// SetScale sets the scale factors.
	//
	// Parameters:
	//   - sx, sy, sz: scale along each axis
	SetScale(sx, sy, sz float32)

	// Advance applies one frame of spin: rotation += rotationSpeed * dt * 60, so the spin
	// matches the per-frame speed at 60 frames per second regardless of the real frame rate.
	// Angles are kept within [0, 2*pi).
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	Advance(dt float32)

	// ModelMatrix returns translation * rotation * scale in column-major order.
	//
	// Returns:
	//   - [16]float32: the model matrix
	ModelMatrix() [16]float32

	// Uniform packs the object's transform for the GPU.
	//
	// Returns:
	//   - GPUObjectUniform: the packed uniform
	Uniform() GPUObjectUniform
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled GameObject at the origin with unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Position() (x, y, z float32) {
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) RotationSpeed() (rx, ry, rz float32) {
	return g.rotationSpeed[0], g.rotationSpeed[1], g.rotationSpeed[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetRotationSpeed(rx, ry, rz float32) {
	g.rotationSpeed = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) Advance(dt float32) {
	for i := range 3 {
		turns := (g.rotation[i] + g.rotationSpeed[i]*dt*60) / (2 * math32.Pi)
		g.rotation[i] = common.Wrap01(turns) * 2 * math32.Pi
	}
}

func (g *gameObject) ModelMatrix() [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:], g.position, g.rotation, g.scale)
	return m
}

func (g *gameObject) Uniform() GPUObjectUniform {
	return GPUObjectUniform{Model: g.ModelMatrix()}
}
