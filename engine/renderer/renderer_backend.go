package renderer

import "slices"

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4; higher values are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA2x enables 2× multisample anti-aliasing. Adapter-dependent.
	MSAA2x MSAASampleCount = 2

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16× multisample anti-aliasing. Adapter-dependent.
	MSAA16x MSAASampleCount = 16
)

// defaultSupportedSampleCounts are the counts every WebGPU adapter accepts for a render target.
var defaultSupportedSampleCounts = []MSAASampleCount{MSAAOff, MSAA4x}

// ClampSampleCount returns the largest supported count that does not exceed requested.
// Requests below every supported count fall back to MSAAOff.
//
// Parameters:
//   - requested: the sample count asked for, usually from the anti-aliasing setting
//   - supported: the counts the adapter accepts, in any order
//
// Returns:
//   - MSAASampleCount: the count to render with
func ClampSampleCount(requested MSAASampleCount, supported []MSAASampleCount) MSAASampleCount {
	best := MSAAOff
	for _, c := range supported {
		if c <= requested && c > best {
			best = c
		}
	}
	return best
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

func sortedSampleCounts(counts []MSAASampleCount) []MSAASampleCount {
	out := slices.Clone(counts)
	slices.Sort(out)
	return slices.Compact(out)
}
