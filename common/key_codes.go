package common

// Key codes for the viewer's bindings. Printable keys use their ASCII value,
// which is what GLFW reports for them.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87 // pan forward
	KeyA     = 65 // pan left
	KeyS     = 83 // pan back
	KeyD     = 68 // pan right
	KeyQ     = 81 // pan down
	KeyE     = 69 // pan up
	KeyR     = 82 // reset camera target
	KeyP     = 80 // toggle stats
	KeyF     = 70 // toggle fullscreen
	KeyMinus = 45 // zoom out
	KeyEqual = 61 // zoom in
)

// Non-printable keys (GLFW values).
const (
	KeyEsc   = 256
	KeyRight = 262
	KeyLeft  = 263
	KeyDown  = 264
	KeyUp    = 265
	KeyF11   = 300
)
