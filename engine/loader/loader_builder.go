package loader

import "github.com/Carmen-Shannon/oxy-viewer/common"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers is an option builder that sets the maximum number of concurrent decoders.
// Values below one are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithFallback is an option builder that replaces the texture returned for failed loads.
// Invalid staging data is ignored.
//
// Parameters:
//   - tex: the fallback texture
//
// Returns:
//   - LoaderBuilderOption: a function that applies the fallback option to a loader
func WithFallback(tex common.TextureStagingData) LoaderBuilderOption {
	return func(l *loader) {
		if tex.Valid() {
			l.fallback = tex
		}
	}
}

// WithTexture is an option builder that pre-populates the texture cache.
//
// Parameters:
//   - key: the cache key for the texture
//   - tex: the texture to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(key string, tex common.TextureStagingData) LoaderBuilderOption {
	return func(l *loader) {
		l.textureCache[key] = tex
	}
}
