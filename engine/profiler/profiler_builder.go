package profiler

import "time"

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often a sample is taken.
//
// Parameters:
//   - interval: the sampling interval
//
// Returns:
//   - ProfilerOption: functional option to set the interval
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithClock replaces the time source used to measure intervals.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithLogging sets whether samples are logged.
func WithLogging(enabled bool) ProfilerOption {
	return func(p *Profiler) {
		p.logging = enabled
	}
}
