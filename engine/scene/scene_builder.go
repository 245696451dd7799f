package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithCamera replaces the default camera. If the ground constraint has no rig yet it is
// bound to the camera's controller.
//
// Parameters:
//   - cam: the camera to view the scene through
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithConstraint replaces the default ground constraint. A constraint without a rig is
// bound to the scene camera's controller.
//
// Parameters:
//   - gc: the ground constraint applied each frame
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithConstraint(gc camera.GroundConstraint) SceneBuilderOption {
	return func(s *scene) {
		s.constraint = gc
	}
}

// WithNormalMap sets the ground normal map uploaded by Init. Invalid data is ignored and
// the flat normal map is kept.
//
// Parameters:
//   - tex: the decoded normal map
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNormalMap(tex common.TextureStagingData) SceneBuilderOption {
	return func(s *scene) {
		if tex.Valid() {
			s.normalMap = tex
		}
	}
}

// WithSyncHook registers fn to run on the render goroutine after every settings sync,
// including the initial one in NewScene.
//
// Parameters:
//   - fn: receives the settings just applied
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSyncHook(fn func(settings.Settings)) SceneBuilderOption {
	return func(s *scene) {
		s.onSync = append(s.onSync, fn)
	}
}
