package engine

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/rs/zerolog/log"
)

// headlessFrameRate paces the render loop when no window is attached and no cap is set.
const headlessFrameRate = 60

// Window is the part of a platform window the engine drives.
// window.Window satisfies it.
type Window interface {
	// ProcessMessages runs the window message loop until the window closes.
	ProcessMessages()

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// SetResizeCallback sets the function called when the framebuffer is resized.
	SetResizeCallback(callback func(width, height int))

	// Close closes the window and releases platform resources.
	Close() error
}

// frameCallback is a named per-frame function.
type frameCallback struct {
	name string
	fn   func(dt float32)
}

// callbackList collects the frame callbacks one owner registers.
type callbackList struct {
	callbacks []frameCallback
}

func (c *callbackList) OnFrame(name string, fn func(dt float32)) {
	if fn == nil {
		return
	}
	c.callbacks = append(c.callbacks, frameCallback{name: name, fn: fn})
}

// engine implements the Engine interface.
// The window message loop runs on the calling goroutine; frames run on the render goroutine.
type engine struct {
	mu *sync.Mutex

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window Window

	profiler *profiler.Profiler
	frames   atomic.Uint64

	callbacks      callbackList
	sceneCallbacks map[int]*callbackList
	scenes         map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrameErr     string
}

// Engine is the main entry point for the viewer.
// It owns the render loop: registered frame callbacks run in order once per frame, followed
// by drawing every active scene.
type Engine interface {
	scene.FrameRegistrar

	// Window returns the attached window, or nil when running headless.
	//
	// Returns:
	//   - Window: the window instance
	Window() Window

	// Profiler returns the frame profiler ticked once per frame.
	//
	// Returns:
	//   - *profiler.Profiler: the engine's profiler
	Profiler() *profiler.Profiler

	// EnableProfiler turns on periodic profiler log output.
	EnableProfiler()

	// DisableProfiler turns off periodic profiler log output. Samples are still collected.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key and registers its frame callbacks.
	// Scenes are updated and drawn in ascending key order. A scene already at key is replaced.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key along with its callbacks.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Step runs exactly one frame: engine callbacks, then each active scene's callbacks,
	// then the draw pass if the first active scene has a renderer.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - error: joined errors from the draw pass
	Step(dt float32) error

	// Frames returns the number of frames stepped so far.
	Frames() uint64

	// Run starts the render loop and blocks until the window closes or Quit is called.
	// Without a window the loop is paced by the frame limit (60 fps if uncapped).
	// When Run returns the render goroutine has exited, so the caller may release the
	// renderer and then destroy the window.
	Run()

	// Quit signals the render loop to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel closed once Quit has been called.
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, scenes, frame cap)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:             &sync.Mutex{},
		quitChannel:    make(chan struct{}),
		scenes:         make(map[int]scene.Scene),
		sceneCallbacks: make(map[int]*callbackList),
		profiler:       profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() Window {
	return e.window
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) EnableProfiler() {
	e.profiler.SetLogging(true)
}

func (e *engine) DisableProfiler() {
	e.profiler.SetLogging(false)
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

func (e *engine) OnFrame(name string, fn func(dt float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callbacks.OnFrame(name, fn)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	cbs := &callbackList{}
	s.RegisterCallbacks(cbs)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
	e.sceneCallbacks[key] = cbs
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
	delete(e.sceneCallbacks, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

// frameSnapshot copies the callbacks and active scenes for one frame in ascending key order.
func (e *engine) frameSnapshot() ([]frameCallback, []scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	callbacks := slices.Clone(e.callbacks.callbacks)
	var active []scene.Scene
	for _, k := range keys {
		s := e.scenes[k]
		if !s.Active() {
			continue
		}
		active = append(active, s)
		if cbs := e.sceneCallbacks[k]; cbs != nil {
			callbacks = append(callbacks, cbs.callbacks...)
		}
	}
	return callbacks, active
}

func (e *engine) Step(dt float32) error {
	callbacks, active := e.frameSnapshot()

	for _, cb := range callbacks {
		cb.fn(dt)
	}

	err := e.draw(active)

	e.frames.Add(1)
	e.profiler.Tick()
	return err
}

// draw runs the frame lifecycle once for all active scenes.
// All scenes share the first active scene's renderer: BeginFrame once, DrawCalls per scene,
// EndFrame and Present once.
func (e *engine) draw(active []scene.Scene) error {
	if len(active) == 0 {
		return nil
	}
	frameRenderer := active[0].Renderer()
	if frameRenderer == nil {
		return nil
	}

	if err := frameRenderer.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	var errs []error
	for _, s := range active {
		if err := s.DrawCalls(); err != nil {
			errs = append(errs, err)
		}
	}
	frameRenderer.EndFrame()
	frameRenderer.Present()
	return errors.Join(errs...)
}

// resize forwards a framebuffer resize to every scene's renderer and camera.
func (e *engine) resize(width, height int) {
	for _, s := range e.Scenes() {
		if r := s.Renderer(); r != nil {
			r.Resize(width, height)
		}
		s.SetViewport(width, height)
	}
}

func (e *engine) Run() {
	e.running.Store(true)
	e.wg.Add(1)
	go e.handleRender()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}

	e.wg.Wait()
	e.running.Store(false)
	log.Info().Uint64("frames", e.Frames()).Msg("engine stopped")
}

// Quit signals the render goroutine to exit and closes the window so the message loop returns.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
	if e.window != nil && e.window.IsRunning() {
		if err := e.window.Close(); err != nil {
			log.Warn().Err(err).Msg("closing window")
		}
	}
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handleRender runs the frame loop in its own goroutine until the quit channel is closed.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("render goroutine recovered from panic")
			e.Quit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastRender).Seconds())
		lastRender = now

		if err := e.Step(dt); err != nil {
			e.logFrameError(err)
		}

		e.mu.Lock()
		limit := e.renderFrameLimit
		e.mu.Unlock()
		if limit == 0 && e.window == nil {
			limit = frameDuration(headlessFrameRate)
		}
		if limit > 0 {
			if remaining := limit - time.Since(now); remaining > 0 {
				select {
				case <-e.quitChannel:
					return
				case <-time.After(remaining):
				}
			}
		}
	}
}

// logFrameError logs a frame error once until a different error occurs.
func (e *engine) logFrameError(err error) {
	msg := err.Error()
	if msg == e.lastFrameErr {
		return
	}
	e.lastFrameErr = msg
	log.Error().Err(err).Uint64("frame", e.Frames()).Msg("frame failed")
}
