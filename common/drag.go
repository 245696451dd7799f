package common

// MouseButton identifies a mouse button. Values match GLFW's button numbering.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// DragTracker turns button presses and cursor positions into drag deltas.
// Only one button drags at a time; the first one pressed wins until it is released.
type DragTracker struct {
	button   MouseButton
	dragging bool
	lastX    float32
	lastY    float32
}

// Press starts a drag with button at (x, y) unless another drag is in progress.
func (d *DragTracker) Press(button MouseButton, x, y float32) {
	if d.dragging {
		return
	}
	d.button = button
	d.dragging = true
	d.lastX, d.lastY = x, y
}

// Release ends the drag if button is the one dragging.
func (d *DragTracker) Release(button MouseButton) {
	if d.dragging && d.button == button {
		d.dragging = false
	}
}

// Move records a cursor position and reports the delta since the previous one.
//
// Parameters:
//   - x, y: cursor position in window pixels
//
// Returns:
//   - MouseButton: the dragging button
//   - dx, dy: movement since the last Press or Move
//   - bool: false when no drag is in progress or the cursor did not move
func (d *DragTracker) Move(x, y float32) (MouseButton, float32, float32, bool) {
	if !d.dragging {
		return 0, 0, 0, false
	}
	dx, dy := x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	if dx == 0 && dy == 0 {
		return d.button, 0, 0, false
	}
	return d.button, dx, dy, true
}

// Dragging reports whether a drag is in progress.
func (d *DragTracker) Dragging() bool {
	return d.dragging
}
