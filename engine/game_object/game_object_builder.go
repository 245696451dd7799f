package game_object

import "github.com/Carmen-Shannon/oxy-viewer/engine/model"

// GameObjectBuilderOption is a functional option for configuring a GameObject.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the object's identifier.
//
// Parameters:
//   - name: the draw key for this object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithEnabled sets whether the object starts enabled for rendering.
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithModel sets the model the object draws.
//
// Parameters:
//   - m: the model
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = [3]float32{x, y, z}
	}
}

// WithScale sets the initial scale factors.
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation sets the initial Euler rotation in radians.
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotation = [3]float32{rx, ry, rz}
	}
}

// WithRotationSpeed sets the spin added per 60Hz frame on each axis.
//
// Parameters:
//   - rx, ry, rz: speed in radians per 60Hz frame
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation speed
func WithRotationSpeed(rx, ry, rz float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotationSpeed = [3]float32{rx, ry, rz}
	}
}
