package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/game_object"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
	"github.com/rs/zerolog/log"
)

// Object, mesh and texture keys registered on the renderer.
const (
	BoxKey              = "box"
	GroundKey           = "ground"
	GroundNormalTexture = "ground/normal"
)

// Scene layout. The ground plane is the y = 0 plane the camera constraint protects; the box
// floats half a unit above it.
const (
	BoxWidth   float32 = 2
	BoxHeight  float32 = 3
	BoxDepth   float32 = 2
	BoxCenterY float32 = 2
	GroundSize float32 = 10
)

// Frame callback names in registration order.
const (
	CallbackSettings = "settings"
	CallbackBox      = "box"
	CallbackGround   = "ground"
	CallbackCamera   = "camera"
)

// Scene is the configurator scene: a spinning box above a ground plane, lit by a sun and
// an environment preset, viewed through a ground-constrained orbit camera. Its appearance
// follows a settings.Store.
//
// The per-frame methods (SyncSettings, AnimateBox, ScrollGround, UpdateCamera, DrawCalls)
// run on the render goroutine. ResetTarget, Settings, Active and SetActive are safe from any
// goroutine.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active reports whether the engine draws this scene.
	Active() bool

	// SetActive enables or disables drawing.
	//
	// Parameters:
	//   - active: true to draw the scene each frame
	SetActive(active bool)

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Constraint returns the ground constraint bound to the camera's controller.
	Constraint() camera.GroundConstraint

	// Renderer returns the renderer attached by Init, or nil before Init.
	Renderer() Renderer

	// Box returns the spinning box.
	Box() game_object.GameObject

	// Ground returns the ground plane.
	Ground() game_object.GameObject

	// Sun returns the directional light.
	Sun() light.Light

	// Environment returns the lighting resolved from the last synced background panel.
	Environment() light.Environment

	// Settings returns the last settings applied to the scene.
	Settings() settings.Settings

	// Init uploads the scene's meshes and textures and attaches r for drawing.
	//
	// Parameters:
	//   - r: the renderer to draw through
	//
	// Returns:
	//   - error: error if a resource upload fails
	Init(r Renderer) error

	// RegisterCallbacks registers the scene's per-frame work in its fixed order: settings
	// sync, box rotation, ground texture scroll, camera constraint and matrices.
	//
	// Parameters:
	//   - reg: the frame loop owner
	RegisterCallbacks(reg FrameRegistrar)

	// SyncSettings applies the store's snapshot if it changed since the last sync.
	//
	// Returns:
	//   - bool: true if new settings were applied
	SyncSettings() bool

	// AnimateBox advances the box spin by one frame.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	AnimateBox(dt float32)

	// ScrollGround advances the ground normal map offset by one frame.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	ScrollGround(dt float32)

	// UpdateCamera applies the ground constraint and recomputes the camera matrices.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	UpdateCamera(dt float32)

	// DrawCalls writes the frame and object uniforms and records the draws, opaque objects
	// first. Must be called between the renderer's BeginFrame and EndFrame.
	//
	// Returns:
	//   - error: error if no renderer is attached or a draw fails
	DrawCalls() error

	// ResetTarget starts the animation that returns the camera target to the origin.
	ResetTarget()

	// SetViewport updates the camera aspect ratio for a new framebuffer size.
	// Zero sizes are ignored.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	SetViewport(width, height int)
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	store       settings.Store
	lastVersion uint64
	synced      bool
	current     settings.Settings
	env         light.Environment
	onSync      []func(settings.Settings)

	cam        camera.Camera
	constraint camera.GroundConstraint

	box    game_object.GameObject
	ground game_object.GameObject
	sun    light.Light

	normalMap   common.TextureStagingData
	scrollSpeed float32
	uvOffset    float32

	r Renderer
}

var _ Scene = &scene{}

// NewScene creates the configurator scene driven by store. The store's current snapshot is
// applied immediately so the scene is fully configured before the first frame.
// NewScene panics if store is nil.
//
// Parameters:
//   - name: the name of the scene
//   - store: the live settings
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, store settings.Store, options ...SceneBuilderOption) Scene {
	if store == nil {
		panic("scene: NewScene requires a non-nil settings store")
	}

	s := &scene{
		mu:        &sync.RWMutex{},
		name:      name,
		active:    true,
		store:     store,
		normalMap: common.FlatNormalTexture(),
		sun:       light.NewLight(),
	}

	for _, option := range options {
		option(s)
	}

	if s.cam == nil {
		s.cam = camera.NewCamera(camera.WithController(camera.NewCameraController()))
	}
	if s.constraint == nil {
		s.constraint = camera.NewGroundConstraint()
	}
	if s.constraint.Rig() == nil && s.cam.Controller() != nil {
		s.constraint.SetRig(s.cam.Controller())
	}

	boxVertices, boxIndices := model.BuildBox(BoxWidth, BoxHeight, BoxDepth)
	s.box = game_object.NewGameObject(
		game_object.WithName(BoxKey),
		game_object.WithPosition(0, BoxCenterY, 0),
		game_object.WithModel(model.NewModel(
			model.WithName(BoxKey),
			model.WithMesh(boxVertices, boxIndices),
			model.WithMaterial(material.NewMaterial(material.WithName(BoxKey))),
		)),
	)

	groundVertices, groundIndices := model.BuildPlane(GroundSize, GroundSize)
	s.ground = game_object.NewGameObject(
		game_object.WithName(GroundKey),
		game_object.WithModel(model.NewModel(
			model.WithName(GroundKey),
			model.WithMesh(groundVertices, groundIndices),
			model.WithMaterial(material.NewMaterial(
				material.WithName(GroundKey),
				material.WithNormalTexture(GroundNormalTexture),
			)),
		)),
	)

	s.SyncSettings()
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Constraint() camera.GroundConstraint {
	return s.constraint
}

func (s *scene) Renderer() Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Box() game_object.GameObject {
	return s.box
}

func (s *scene) Ground() game_object.GameObject {
	return s.ground
}

func (s *scene) Sun() light.Light {
	return s.sun
}

func (s *scene) Environment() light.Environment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env
}

func (s *scene) Settings() settings.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *scene) Init(r Renderer) error {
	if r == nil {
		return fmt.Errorf("scene %q: nil renderer", s.name)
	}

	for _, obj := range []game_object.GameObject{s.box, s.ground} {
		m := obj.Model()
		if err := r.InitMesh(m.Name(), m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
			return fmt.Errorf("scene %q: init mesh %q: %w", s.name, m.Name(), err)
		}
	}
	if err := r.InitTexture(GroundNormalTexture, s.normalMap); err != nil {
		return fmt.Errorf("scene %q: init texture %q: %w", s.name, GroundNormalTexture, err)
	}

	s.mu.Lock()
	s.r = r
	current, env := s.current, s.env
	s.mu.Unlock()

	applyRendererSettings(r, current, env)
	return nil
}

func (s *scene) RegisterCallbacks(reg FrameRegistrar) {
	reg.OnFrame(CallbackSettings, func(float32) { s.SyncSettings() })
	reg.OnFrame(CallbackBox, s.AnimateBox)
	reg.OnFrame(CallbackGround, s.ScrollGround)
	reg.OnFrame(CallbackCamera, s.UpdateCamera)
}

func (s *scene) SyncSettings() bool {
	version := s.store.Version()
	s.mu.RLock()
	stale := !s.synced || version != s.lastVersion
	s.mu.RUnlock()
	if !stale {
		return false
	}

	current := s.store.Snapshot()
	env := light.EnvironmentFor(current.Background)

	box := s.box.Model().Material()
	box.SetPhysical(current.Box.Physical)
	speed := current.Box.Speed
	s.box.SetRotationSpeed(speed, speed, speed)

	ground := s.ground.Model().Material()
	ground.SetPhysical(current.Ground.Physical)
	ground.SetNormalMap(current.Ground.UseNormalMap, current.Ground.NormalRepeat)
	s.scrollSpeed = current.Ground.TextureScrollSpeed

	s.cam.SetFov(common.Radians(current.Camera.Fov))
	env.ApplyTo(s.sun)

	s.mu.Lock()
	s.current = current
	s.env = env
	s.lastVersion = version
	s.synced = true
	r := s.r
	hooks := s.onSync
	s.mu.Unlock()

	if r != nil {
		applyRendererSettings(r, current, env)
	}
	for _, fn := range hooks {
		fn(current)
	}

	log.Debug().Str("scene", s.name).Uint64("version", version).Msg("settings applied")
	return true
}

func applyRendererSettings(r Renderer, current settings.Settings, env light.Environment) {
	r.SetClearColor(env.ClearColor())
	r.SetSampleCount(current.General.AntiAliasing.Samples())
}

func (s *scene) AnimateBox(dt float32) {
	s.box.Advance(dt)
}

func (s *scene) ScrollGround(dt float32) {
	s.uvOffset = common.Wrap01(s.uvOffset + s.scrollSpeed*dt*60)
	s.ground.Model().Material().SetUVOffset(s.uvOffset, 0)
}

func (s *scene) UpdateCamera(dt float32) {
	s.constraint.Apply(dt)
	s.cam.Update()
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	r := s.r
	current := s.current
	s.mu.RUnlock()

	if r == nil {
		return fmt.Errorf("scene %q has no renderer attached", s.name)
	}

	frame := GPUFrameUniform{
		Camera:      s.cam.Uniform(),
		Light:       light.NewGPULightUniform(s.sun, s.Environment().Ambient),
		ToneMapping: current.Camera.ToneMapping.Index(),
		Exposure:    current.Camera.Exposure,
	}
	r.WriteFrameUniform(frame.Marshal())

	objects := []game_object.GameObject{s.ground, s.box}
	for _, transparent := range []bool{false, true} {
		for _, obj := range objects {
			if !obj.Enabled() {
				continue
			}
			mat := obj.Model().Material()
			if mat.Transparent() != transparent {
				continue
			}

			draw := GPUDrawUniform{Object: obj.Uniform(), Material: mat.Uniform()}
			if err := r.WriteObjectUniform(obj.Name(), draw.Marshal()); err != nil {
				return fmt.Errorf("scene %q: write uniform for %q: %w", s.name, obj.Name(), err)
			}
			if err := r.Draw(DrawCall{
				Object:        obj.Name(),
				Mesh:          obj.Model().Name(),
				NormalTexture: mat.NormalTexture(),
				Transparent:   transparent,
			}); err != nil {
				return fmt.Errorf("draw call failed for %q in scene %q: %w", obj.Name(), s.name, err)
			}
		}
	}
	return nil
}

func (s *scene) ResetTarget() {
	s.constraint.ResetTarget()
}

func (s *scene) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.cam.SetAspect(float32(width) / float32(height))
}
