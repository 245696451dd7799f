package settings

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Store is the concurrency-safe home of the live Settings. Writers are the control panel
// and the settings file watcher; the render goroutine polls Version and pulls a Snapshot
// when it changed.
type Store interface {
	// Snapshot returns a copy of the current settings.
	//
	// Returns:
	//   - Settings: the current values
	Snapshot() Settings

	// Version returns a counter that increases on every successful change.
	//
	// Returns:
	//   - uint64: the change counter
	Version() uint64

	// Set updates one parameter. Floats are clamped to their range.
	//
	// Parameters:
	//   - panel: the panel name, e.g. "box"
	//   - key: the parameter key, e.g. "metalness"
	//   - value: the new value
	//
	// Returns:
	//   - error: ErrUnknownPanel, ErrUnknownKey or ErrInvalidValue (wrapped)
	Set(panel, key string, value any) error

	// Replace swaps in a whole settings value, normalizing it first.
	//
	// Parameters:
	//   - s: the new settings
	Replace(s Settings)

	// Subscribe registers fn to be called with the new settings after every change.
	// Listeners run on the goroutine that made the change and must not call back into Set.
	//
	// Parameters:
	//   - fn: the listener
	//
	// Returns:
	//   - func(): removes the listener
	Subscribe(fn func(Settings)) func()
}

type storeImpl struct {
	mu *sync.RWMutex
	// notifyMu is taken before mu is released so listeners see changes in commit order.
	notifyMu  *sync.Mutex
	settings  Settings
	version   uint64
	listeners map[int]func(Settings)
	nextID    int
}

var _ Store = &storeImpl{}

// NewStore creates a Store holding Default() unless overridden by options.
//
// Parameters:
//   - options: functional options to configure the store
//
// Returns:
//   - Store: the newly created store
func NewStore(options ...StoreOption) Store {
	st := &storeImpl{
		mu:        &sync.RWMutex{},
		notifyMu:  &sync.Mutex{},
		settings:  Default(),
		listeners: make(map[int]func(Settings)),
	}
	for _, option := range options {
		option(st)
	}
	st.settings = Normalize(st.settings)
	return st
}

func (st *storeImpl) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings
}

func (st *storeImpl) Version() uint64 {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.version
}

func (st *storeImpl) Set(panel, key string, value any) error {
	param, err := Lookup(panel, key)
	if err != nil {
		return err
	}

	st.mu.Lock()
	next := st.settings
	if err := param.Apply(&next, value); err != nil {
		st.mu.Unlock()
		return err
	}
	st.settings = next
	st.version++
	listeners := st.snapshotListeners()
	st.notifyMu.Lock()
	st.mu.Unlock()
	defer st.notifyMu.Unlock()

	log.Debug().Str("panel", panel).Str("key", key).Interface("value", param.Value(next)).Msg("setting changed")
	notify(listeners, next)
	return nil
}

func (st *storeImpl) Replace(s Settings) {
	s = Normalize(s)

	st.mu.Lock()
	st.settings = s
	st.version++
	listeners := st.snapshotListeners()
	st.notifyMu.Lock()
	st.mu.Unlock()
	defer st.notifyMu.Unlock()

	notify(listeners, s)
}

func (st *storeImpl) Subscribe(fn func(Settings)) func() {
	st.mu.Lock()
	defer st.mu.Unlock()
	id := st.nextID
	st.nextID++
	st.listeners[id] = fn
	return func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		delete(st.listeners, id)
	}
}

// snapshotListeners copies the listener set in registration order.
// Caller must hold the mutex.
func (st *storeImpl) snapshotListeners() []func(Settings) {
	out := make([]func(Settings), 0, len(st.listeners))
	for id := range st.nextID {
		if fn, ok := st.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []func(Settings), s Settings) {
	for _, fn := range listeners {
		fn(s)
	}
}
