package panel

import "github.com/Carmen-Shannon/oxy-viewer/engine/profiler"

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*server)

// WithAddr sets the HTTP listen address. Defaults to ":8080".
//
// Parameters:
//   - addr: host:port to listen on
//
// Returns:
//   - ServerOption: option function to apply
func WithAddr(addr string) ServerOption {
	return func(s *server) {
		s.addr = addr
	}
}

// WithSettingsPath sets the file the save action writes to.
func WithSettingsPath(path string) ServerOption {
	return func(s *server) {
		s.settingsPath = path
	}
}

// WithResetter sets the target of the resetTarget action.
//
// Parameters:
//   - r: usually the viewer scene
//
// Returns:
//   - ServerOption: option function to apply
func WithResetter(r Resetter) ServerOption {
	return func(s *server) {
		s.resetter = r
	}
}

// WithProfiler sets the profiler whose samples are reported by /health and streamed to clients.
func WithProfiler(p *profiler.Profiler) ServerOption {
	return func(s *server) {
		s.profiler = p
	}
}
