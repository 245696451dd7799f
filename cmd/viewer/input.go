package main

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
	"github.com/rs/zerolog/log"
)

// keyPanStep is the pan distance of one key press in controller pan units.
const keyPanStep = 10

// keyZoomStep is the zoom amount of one +/- press.
const keyZoomStep = 1

type inputKind int

const (
	inputKey inputKind = iota
	inputScroll
	inputDrag
)

type inputEvent struct {
	kind   inputKind
	key    uint32
	button common.MouseButton
	dx, dy float32
}

// inputQueue buffers window events raised on the main thread until the render goroutine
// drains them, so camera changes land between frames instead of during the constraint step.
type inputQueue struct {
	mu     sync.Mutex
	events []inputEvent

	controller camera.CameraController
	resetter   interface{ ResetTarget() }
	store      settings.Store
}

func newInputQueue(controller camera.CameraController, resetter interface{ ResetTarget() }, store settings.Store) *inputQueue {
	return &inputQueue{
		controller: controller,
		resetter:   resetter,
		store:      store,
	}
}

func (q *inputQueue) push(ev inputEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

func (q *inputQueue) KeyDown(keyCode uint32) {
	q.push(inputEvent{kind: inputKey, key: keyCode})
}

func (q *inputQueue) Scroll(delta float32) {
	q.push(inputEvent{kind: inputScroll, dy: delta})
}

func (q *inputQueue) Drag(button common.MouseButton, dx, dy float32) {
	q.push(inputEvent{kind: inputDrag, button: button, dx: dx, dy: dy})
}

// Drain applies every queued event in arrival order. Registered as a frame callback.
func (q *inputQueue) Drain(float32) {
	q.mu.Lock()
	events := q.events
	q.events = nil
	q.mu.Unlock()

	for _, ev := range events {
		switch ev.kind {
		case inputKey:
			q.applyKey(ev.key)
		case inputScroll:
			q.controller.Zoom(ev.dy)
		case inputDrag:
			q.applyDrag(ev.button, ev.dx, ev.dy)
		}
	}
}

func (q *inputQueue) applyDrag(button common.MouseButton, dx, dy float32) {
	switch button {
	case common.MouseButtonLeft:
		q.controller.Orbit(dx, dy)
	case common.MouseButtonRight:
		q.controller.PanRight(-dx)
		q.controller.PanUp(dy)
	}
}

func (q *inputQueue) applyKey(key uint32) {
	c := q.controller
	switch key {
	case common.KeyW:
		c.PanForward(keyPanStep)
	case common.KeyS:
		c.PanForward(-keyPanStep)
	case common.KeyA:
		c.PanRight(-keyPanStep)
	case common.KeyD:
		c.PanRight(keyPanStep)
	case common.KeyE:
		c.PanUp(keyPanStep)
	case common.KeyQ:
		c.PanUp(-keyPanStep)
	case common.KeyLeft:
		c.OrbitLeft()
	case common.KeyRight:
		c.OrbitRight()
	case common.KeyUp:
		c.OrbitUp()
	case common.KeyDown:
		c.OrbitDown()
	case common.KeyEqual:
		c.Zoom(keyZoomStep)
	case common.KeyMinus:
		c.Zoom(-keyZoomStep)
	case common.KeyR:
		q.resetter.ResetTarget()
	case common.KeyP:
		q.toggle("showStats", q.store.Snapshot().General.ShowStats)
	case common.KeyF, common.KeyF11:
		q.toggle("fullscreen", q.store.Snapshot().General.Fullscreen)
	}
}

// toggle flips a general panel switch through the store so the panel clients see it too.
func (q *inputQueue) toggle(key string, current bool) {
	if err := q.store.Set(settings.PanelGeneral, key, !current); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("toggle failed")
	}
}
