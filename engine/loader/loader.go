package loader

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/rs/zerolog/log"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	workers  int
	pool     worker.DynamicWorkerPool
	fallback common.TextureStagingData

	textureCache map[string]common.TextureStagingData
}

// Loader decodes texture files into RGBA staging data and caches the result by key.
// Decoding runs on a worker pool so several textures load in parallel. A texture that
// cannot be read or decoded is replaced by the fallback texture, so a missing asset never
// prevents the scene from rendering.
type Loader interface {
	// LoadTexture decodes one texture file and caches it under key.
	// A cached key is returned without touching the file again.
	//
	// Parameters:
	//   - key: the cache key, typically the renderer texture key
	//   - path: the image file to decode
	//
	// Returns:
	//   - common.TextureStagingData: the decoded texture, or the fallback on error
	//   - error: the read or decode failure, nil on success
	LoadTexture(key, path string) (common.TextureStagingData, error)

	// LoadTextures decodes several texture files concurrently. Every key is present in the
	// result; failures get the fallback texture and are reported in the joined error.
	//
	// Parameters:
	//   - paths: image file paths keyed by cache key
	//
	// Returns:
	//   - map[string]common.TextureStagingData: decoded textures keyed like paths
	//   - error: joined failures, nil if every texture decoded
	LoadTextures(paths map[string]string) (map[string]common.TextureStagingData, error)

	// Get retrieves a cached texture by key.
	//
	// Parameters:
	//   - key: the cache key to look up
	//
	// Returns:
	//   - common.TextureStagingData: the cached texture
	//   - bool: false if nothing is cached under key
	Get(key string) (common.TextureStagingData, bool)

	// Textures returns a copy of the texture cache.
	//
	// Returns:
	//   - map[string]common.TextureStagingData: all cached textures keyed by cache key
	Textures() map[string]common.TextureStagingData
}

var _ Loader = &loader{}

// NewLoader creates a Loader whose fallback is a flat normal map.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers:      4,
		fallback:     common.FlatNormalTexture(),
		textureCache: make(map[string]common.TextureStagingData),
	}
	for _, option := range options {
		option(l)
	}

	// Idle workers exit after a second; decoding happens in bursts at startup and on reload.
	l.pool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	return l
}

func (l *loader) LoadTexture(key, path string) (common.TextureStagingData, error) {
	if tex, ok := l.Get(key); ok {
		return tex, nil
	}

	tex, err := common.DecodeImageFile(path)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("path", path).Msg("texture load failed, using fallback")
		return l.fallback, fmt.Errorf("load texture %q: %w", key, err)
	}

	l.mu.Lock()
	l.textureCache[key] = tex
	l.mu.Unlock()
	return tex, nil
}

func (l *loader) LoadTextures(paths map[string]string) (map[string]common.TextureStagingData, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]common.TextureStagingData, len(paths))
		errs    []error
	)

	taskID := 0
	for key, path := range paths {
		wg.Add(1)
		id := taskID
		taskID++
		l.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()

				tex, err := l.LoadTexture(key, path)
				mu.Lock()
				results[key] = tex
				if err != nil {
					errs = append(errs, err)
				}
				mu.Unlock()
				return nil, nil
			},
		})
	}
	wg.Wait()

	return results, errors.Join(errs...)
}

func (l *loader) Get(key string) (common.TextureStagingData, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tex, ok := l.textureCache[key]
	return tex, ok
}

func (l *loader) Textures() map[string]common.TextureStagingData {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]common.TextureStagingData, len(l.textureCache))
	for k, v := range l.textureCache {
		out[k] = v
	}
	return out
}
