package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = &mode
	}
}

// WithMSAA sets the initial multisample anti-aliasing sample count. When not specified, the
// default is MSAA4x. The count is clamped to the supported sample counts.
//
// Parameters:
//   - count: the MSAASampleCount to request
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.requestedSampleCount = count
	}
}

// WithSupportedSampleCounts declares the MSAA sample counts the adapter accepts for the surface
// format. Defaults to 1 and 4, which every WebGPU adapter supports.
//
// Parameters:
//   - counts: the supported counts
//
// Returns:
//   - RendererBuilderOption: a function that applies the supported counts to a renderer
func WithSupportedSampleCounts(counts ...MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		if len(counts) > 0 {
			r.supportedSampleCounts = sortedSampleCounts(counts)
		}
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
