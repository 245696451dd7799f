package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRenderer counts frame lifecycle calls.
type recordingRenderer struct {
	mu       sync.Mutex
	begins   int
	ends     int
	presents int
	draws    []scene.DrawCall
	resized  [2]int
	beginErr error
}

func (r *recordingRenderer) InitMesh(string, []byte, []byte, int) error          { return nil }
func (r *recordingRenderer) InitTexture(string, common.TextureStagingData) error { return nil }
func (r *recordingRenderer) SetClearColor(float64, float64, float64)             {}
func (r *recordingRenderer) SetSampleCount(int)                                  {}
func (r *recordingRenderer) WriteFrameUniform([]byte)                            {}
func (r *recordingRenderer) WriteObjectUniform(string, []byte) error             { return nil }

func (r *recordingRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resized = [2]int{width, height}
}

func (r *recordingRenderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.begins++
	return r.beginErr
}

func (r *recordingRenderer) Draw(call scene.DrawCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws = append(r.draws, call)
	return nil
}

func (r *recordingRenderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends++
}

func (r *recordingRenderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presents++
}

// stubWindow runs its message loop until Close is called.
type stubWindow struct {
	onResize func(width, height int)
	closed   chan struct{}
	once     sync.Once
}

func newStubWindow() *stubWindow {
	return &stubWindow{closed: make(chan struct{})}
}

func (w *stubWindow) ProcessMessages() { <-w.closed }

func (w *stubWindow) IsRunning() bool {
	select {
	case <-w.closed:
		return false
	default:
		return true
	}
}

func (w *stubWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }

func (w *stubWindow) Close() error {
	w.once.Do(func() { close(w.closed) })
	return nil
}

func newTestScene(t *testing.T, r scene.Renderer) scene.Scene {
	t.Helper()
	s := scene.NewScene("viewer", settings.NewStore())
	if r != nil {
		require.NoError(t, s.Init(r))
	}
	return s
}

func TestOnFrameRunsInOrder(t *testing.T) {
	e := NewEngine()
	var order []string
	e.OnFrame("first", func(float32) { order = append(order, "first") })
	e.OnFrame("second", func(float32) { order = append(order, "second") })
	e.OnFrame("ignored", nil)

	require.NoError(t, e.Step(1.0/60))
	require.NoError(t, e.Step(1.0/60))

	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	assert.Equal(t, uint64(2), e.Frames())
	assert.Equal(t, uint64(2), e.Profiler().Frames())
}

func TestStepRunsSceneCallbacksAfterEngineCallbacks(t *testing.T) {
	s := newTestScene(t, nil)
	e := NewEngine(WithScene(0, s))

	var boxRotationAtCallback float32 = -1
	e.OnFrame("probe", func(float32) {
		boxRotationAtCallback, _, _ = s.Box().Rotation()
	})

	require.NoError(t, e.Step(1.0/60))

	assert.Equal(t, float32(0), boxRotationAtCallback)
	rx, _, _ := s.Box().Rotation()
	assert.InDelta(t, 0.005, rx, 1e-6)
}

func TestStepDrawsActiveScenes(t *testing.T) {
	r := &recordingRenderer{}
	s := newTestScene(t, r)
	e := NewEngine()
	e.AddScene(0, s)

	require.NoError(t, e.Step(1.0/60))

	assert.Equal(t, 1, r.begins)
	assert.Equal(t, 1, r.ends)
	assert.Equal(t, 1, r.presents)
	require.Len(t, r.draws, 2)
	assert.Equal(t, scene.GroundKey, r.draws[0].Object)
	assert.Equal(t, scene.BoxKey, r.draws[1].Object)
}

func TestStepSkipsInactiveScenes(t *testing.T) {
	r := &recordingRenderer{}
	s := newTestScene(t, r)
	s.SetActive(false)
	e := NewEngine(WithScene(0, s))

	require.NoError(t, e.Step(1.0/60))

	assert.Equal(t, 0, r.begins)
	rx, _, _ := s.Box().Rotation()
	assert.Equal(t, float32(0), rx)
}

func TestStepWithoutRendererOnlyAnimates(t *testing.T) {
	s := newTestScene(t, nil)
	e := NewEngine(WithScene(0, s))

	require.NoError(t, e.Step(1.0/60))
	assert.Equal(t, uint64(1), e.Frames())
}

func TestStepReportsBeginFrameError(t *testing.T) {
	r := &recordingRenderer{beginErr: errors.New("surface lost")}
	e := NewEngine(WithScene(0, newTestScene(t, r)))

	err := e.Step(1.0 / 60)
	require.Error(t, err)
	assert.ErrorIs(t, err, r.beginErr)
	assert.Equal(t, 0, r.presents)
}

func TestRemoveSceneDropsCallbacks(t *testing.T) {
	s := newTestScene(t, nil)
	e := NewEngine()
	e.AddScene(3, s)
	assert.Same(t, s, e.Scene(3))
	assert.Len(t, e.Scenes(), 1)

	e.RemoveScene(3)
	require.NoError(t, e.Step(1.0/60))

	assert.Nil(t, e.Scene(3))
	rx, _, _ := s.Box().Rotation()
	assert.Equal(t, float32(0), rx)
}

func TestResizeForwardsToScenes(t *testing.T) {
	w := newStubWindow()
	r := &recordingRenderer{}
	s := newTestScene(t, r)
	NewEngine(WithWindow(w), WithScene(0, s))

	require.NotNil(t, w.onResize)
	w.onResize(1200, 600)

	assert.Equal(t, [2]int{1200, 600}, r.resized)
	assert.Equal(t, float32(2), s.Camera().Aspect())
}

func TestRunHeadlessUntilQuit(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(500))
	stepped := make(chan struct{})
	var once sync.Once
	e.OnFrame("probe", func(float32) { once.Do(func() { close(stepped) }) })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-stepped:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame rendered")
	}
	e.Quit()
	e.Quit()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.Positive(t, e.Frames())
	select {
	case <-e.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestRunReturnsWhenWindowCloses(t *testing.T) {
	w := newStubWindow()
	e := NewEngine(WithWindow(w), WithRenderFrameLimit(500))

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.NoError(t, w.Close())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the window closed")
	}
}

func TestRunWaitsForFrameInFlight(t *testing.T) {
	w := newStubWindow()
	e := NewEngine(WithWindow(w))

	started := make(chan struct{})
	var once sync.Once
	var finished atomic.Bool
	e.OnFrame("slow", func(float32) {
		once.Do(func() { close(started) })
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	<-started
	require.NoError(t, w.Close())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the window closed")
	}
	assert.True(t, finished.Load(), "the frame running at close completes before Run returns")
}

func TestRenderPanicQuits(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(500))
	e.OnFrame("boom", func(float32) { panic("boom") })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after a render panic")
	}
}

func TestProfilerToggles(t *testing.T) {
	p := profiler.NewProfiler()
	e := NewEngine(WithProfiler(p), WithProfiling(true))
	assert.Same(t, p, e.Profiler())

	e.DisableProfiler()
	e.EnableProfiler()
	assert.Nil(t, e.Window())
}
