package settings

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch reloads the settings file at path into store whenever it is written, until ctx is
// cancelled. The parent directory is watched so editors that replace the file are seen.
// A file that fails to parse is logged and ignored; the store keeps its last good value.
//
// Parameters:
//   - ctx: cancels the watch
//   - path: the settings file
//   - store: the store to update
//
// Returns:
//   - error: error if the watcher cannot be started
func Watch(ctx context.Context, path string, store Store) error {
	if _, err := FormatFor(path); err != nil {
		return err
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("settings watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	log.Info().Str("path", path).Msg("watching settings file")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			reload(path, store)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("settings watcher error")
		}
	}
}

func reload(path string, store Store) {
	s, err := Load(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("settings reload failed; keeping current values")
		return
	}
	if s == store.Snapshot() {
		return
	}
	store.Replace(s)
	log.Info().Str("path", path).Msg("settings reloaded")
}
