package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResetter struct {
	calls int
}

func (r *countingResetter) ResetTarget() {
	r.calls++
}

func newTestQueue() (*inputQueue, camera.CameraController, *countingResetter, settings.Store) {
	c := camera.NewCameraController(camera.WithTarget(0, 2, 0))
	r := &countingResetter{}
	st := settings.NewStore()
	return newInputQueue(c, r, st), c, r, st
}

func TestInputQueue_EventsWaitForDrain(t *testing.T) {
	q, c, _, _ := newTestQueue()
	before := c.Radius()

	q.Scroll(2)
	assert.Equal(t, before, c.Radius())

	q.Drain(0)
	assert.InDelta(t, before-2, c.Radius(), 1e-5)

	q.Drain(0)
	assert.InDelta(t, before-2, c.Radius(), 1e-5, "events apply once")
}

func TestInputQueue_KeyPan(t *testing.T) {
	q, c, _, _ := newTestQueue()

	q.KeyDown(common.KeyE)
	q.Drain(0)
	_, y, _ := c.Target()
	assert.Greater(t, y, float32(2))

	q.KeyDown(common.KeyQ)
	q.Drain(0)
	_, y, _ = c.Target()
	assert.InDelta(t, 2, y, 1e-4)
}

func TestInputQueue_KeyOrbitAndZoom(t *testing.T) {
	q, c, _, _ := newTestQueue()
	azimuth := c.Azimuth()
	radius := c.Radius()

	q.KeyDown(common.KeyLeft)
	q.KeyDown(common.KeyEqual)
	q.Drain(0)

	assert.InDelta(t, azimuth-c.OrbitSpeed(), c.Azimuth(), 1e-5)
	assert.InDelta(t, radius-keyZoomStep*c.ZoomSpeed(), c.Radius(), 1e-5)
}

func TestInputQueue_Drag(t *testing.T) {
	q, c, _, _ := newTestQueue()
	azimuth := c.Azimuth()
	tx, ty, tz := c.Target()

	q.Drag(common.MouseButtonLeft, 10, 0)
	q.Drain(0)
	assert.InDelta(t, azimuth-10*c.MouseSensitivity(), c.Azimuth(), 1e-5)
	x, y, z := c.Target()
	assert.Equal(t, [3]float32{tx, ty, tz}, [3]float32{x, y, z}, "orbit keeps the target")

	q.Drag(common.MouseButtonRight, 0, 10)
	q.Drain(0)
	_, y, _ = c.Target()
	assert.Greater(t, y, ty, "right drag down pans up")

	q.Drag(common.MouseButtonMiddle, 50, 50)
	q.Drain(0)
	_, y2, _ := c.Target()
	assert.Equal(t, y, y2, "middle drag is ignored")
}

func TestInputQueue_ResetKey(t *testing.T) {
	q, _, r, _ := newTestQueue()
	q.KeyDown(common.KeyR)
	q.Drain(0)
	assert.Equal(t, 1, r.calls)
}

func TestInputQueue_Toggles(t *testing.T) {
	q, _, _, st := newTestQueue()
	require.False(t, st.Snapshot().General.ShowStats)
	require.False(t, st.Snapshot().General.Fullscreen)

	q.KeyDown(common.KeyP)
	q.KeyDown(common.KeyF)
	q.Drain(0)
	assert.True(t, st.Snapshot().General.ShowStats)
	assert.True(t, st.Snapshot().General.Fullscreen)

	q.KeyDown(common.KeyF11)
	q.Drain(0)
	assert.False(t, st.Snapshot().General.Fullscreen)
}

func TestInputQueue_UnboundKeyIgnored(t *testing.T) {
	q, c, r, st := newTestQueue()
	version := st.Version()
	px, py, pz := c.Position()

	q.KeyDown(common.KeyEsc)
	q.Drain(0)

	x, y, z := c.Position()
	assert.Equal(t, [3]float32{px, py, pz}, [3]float32{x, y, z})
	assert.Equal(t, version, st.Version())
	assert.Zero(t, r.calls)
}
