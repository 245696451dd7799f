package camera

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/rs/zerolog/log"
)

const (
	// GroundClearance is the lowest height the camera may reach above the ground plane.
	GroundClearance float32 = 0.15

	// ResetLerpFactor is the fraction of the remaining distance the target covers per frame
	// while a reset animation is running.
	ResetLerpFactor float32 = 0.1

	// ResetEpsilon is the distance from the origin below which a reset snaps and stops.
	ResetEpsilon float32 = 0.01

	// horizonPolarAngle keeps the polar bound just under a flat horizon.
	horizonPolarAngle = math32.Pi / 2.01
)

// GroundConstraint keeps an orbit camera rig above the ground plane and animates the
// rig's target back to the origin on request.
//
// Apply must be called once per rendered frame on the render goroutine. ResetTarget may be
// called from any goroutine; the request is picked up by the next Apply.
type GroundConstraint interface {
	// Apply runs one frame of the constraint: it recomputes the polar bound, lifts the camera
	// and target above the ground and advances a running reset animation.
	// A nil rig makes the frame a no-op.
	//
	// Parameters:
	//   - dt: seconds since the previous frame (unused; the reset step is per frame)
	Apply(dt float32)

	// ResetTarget starts the animation that moves the target back to the origin.
	// Calling it while an animation is running has no further effect.
	ResetTarget()

	// Resetting reports whether a reset animation is pending or running.
	//
	// Returns:
	//   - bool: true until the target has snapped to the origin
	Resetting() bool

	// Rig returns the constrained camera rig, or nil if none is attached.
	//
	// Returns:
	//   - CameraRig: the attached rig or nil
	Rig() CameraRig

	// SetRig attaches the camera rig to constrain. Passing nil detaches it.
	//
	// Parameters:
	//   - rig: the rig to constrain
	SetRig(rig CameraRig)
}

type groundConstraintImpl struct {
	mu *sync.Mutex

	rig CameraRig

	clearance    float32
	lerpFactor   float32
	resetEpsilon float32

	// requested is set by ResetTarget from any goroutine and consumed by Apply.
	requested atomic.Bool
	// active is written on the render goroutine only.
	active atomic.Bool
}

var _ GroundConstraint = &groundConstraintImpl{}

// NewGroundConstraint creates a GroundConstraint with the default clearance and reset step.
//
// Parameters:
//   - options: functional options to configure the constraint
//
// Returns:
//   - GroundConstraint: the newly created constraint
func NewGroundConstraint(options ...GroundConstraintOption) GroundConstraint {
	gc := &groundConstraintImpl{
		mu:           &sync.Mutex{},
		clearance:    GroundClearance,
		lerpFactor:   ResetLerpFactor,
		resetEpsilon: ResetEpsilon,
	}
	for _, option := range options {
		option(gc)
	}
	return gc
}

// MaxPolarAngleFor returns the polar bound for a camera at position looking at target.
// The asin term grows as the target rises above the camera's horizontal plane. A zero
// distance contributes no asin term.
//
// Parameters:
//   - position: world-space camera position
//   - target: world-space look-at point
//
// Returns:
//   - float32: the polar bound in radians, within [pi/2.01 - pi/2, pi/2.01 + pi/2]
func MaxPolarAngleFor(position, target [3]float32) float32 {
	distance := common.Distance3(position, target)
	if distance == 0 {
		return horizonPolarAngle
	}
	return horizonPolarAngle + math32.Asin(common.Clamp(target[1]/distance, -1, 1))
}

func (gc *groundConstraintImpl) Apply(dt float32) {
	gc.mu.Lock()
	rig := gc.rig
	gc.mu.Unlock()
	if rig == nil {
		return
	}

	gc.clamp(rig)

	if gc.requested.Swap(false) && !gc.active.Swap(true) {
		log.Debug().Msg("camera target reset started")
	}
	if gc.active.Load() {
		gc.resetStep(rig)
	}
}

// clamp enforces the ground plane on the rig for one frame.
func (gc *groundConstraintImpl) clamp(rig CameraRig) {
	px, py, pz := rig.Position()
	tx, ty, tz := rig.Target()

	rig.SetMaxPolarAngle(MaxPolarAngleFor([3]float32{px, py, pz}, [3]float32{tx, ty, tz}))

	if py < gc.clearance {
		rig.SetPosition(px, gc.clearance, pz)
	}
	if ty < 0 {
		rig.SetTarget(tx, 0, tz)
	}
	rig.Update()
}

// resetStep moves the target one lerp step toward the origin, snapping once it is close enough.
func (gc *groundConstraintImpl) resetStep(rig CameraRig) {
	tx, ty, tz := rig.Target()
	next := common.Lerp3([3]float32{tx, ty, tz}, [3]float32{}, gc.lerpFactor)

	if common.Length3(next) < gc.resetEpsilon {
		next = [3]float32{}
		gc.active.Store(false)
		log.Debug().Msg("camera target reset finished")
	}
	rig.SetTarget(next[0], next[1], next[2])
	rig.Update()
}

func (gc *groundConstraintImpl) ResetTarget() {
	gc.requested.Store(true)
}

func (gc *groundConstraintImpl) Resetting() bool {
	return gc.requested.Load() || gc.active.Load()
}

func (gc *groundConstraintImpl) Rig() CameraRig {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.rig
}

func (gc *groundConstraintImpl) SetRig(rig CameraRig) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.rig = rig
}
