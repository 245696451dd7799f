package camera

// GroundConstraintOption is a functional option for configuring a GroundConstraint.
type GroundConstraintOption func(*groundConstraintImpl)

// WithRig attaches the camera rig the constraint operates on.
//
// Parameters:
//   - rig: the orbit rig to constrain
//
// Returns:
//   - GroundConstraintOption: functional option to set the rig
func WithRig(rig CameraRig) GroundConstraintOption {
	return func(gc *groundConstraintImpl) {
		gc.rig = rig
	}
}

// WithClearance overrides the minimum camera height above the ground plane.
//
// Parameters:
//   - clearance: minimum camera y in world units
//
// Returns:
//   - GroundConstraintOption: functional option to set the clearance
func WithClearance(clearance float32) GroundConstraintOption {
	return func(gc *groundConstraintImpl) {
		gc.clearance = clearance
	}
}

// WithResetStep overrides the per-frame lerp fraction and the snap distance of the reset animation.
//
// Parameters:
//   - factor: fraction of the remaining distance covered per frame
//   - epsilon: distance from the origin at which the target snaps
//
// Returns:
//   - GroundConstraintOption: functional option to set the reset step
func WithResetStep(factor, epsilon float32) GroundConstraintOption {
	return func(gc *groundConstraintImpl) {
		gc.lerpFactor = factor
		gc.resetEpsilon = epsilon
	}
}
