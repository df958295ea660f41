package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Dependency installs and build output are not watched.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"artifacts":    true,
	"cache":        true,
	"out":          true,
	"broadcast":    true,
}

// rebuildFunc regenerates the DOT graph from the current tree state.
type rebuildFunc func() (string, error)

func watchAndRebuild(ctx context.Context, root string, exts map[string]bool, debounce time.Duration, rebuild rebuildFunc, b *broker, logger zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, root); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// New directories must be registered even though they never
			// match a source extension themselves.
			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name)
			}

			if !isRelevantChange(event, exts) {
				continue
			}
			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("source changed")

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				publishCurrentGraph(rebuild, b, logger)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// publishCurrentGraph rebuilds and broadcasts the graph. A failed
// rebuild keeps the last good graph on screen.
func publishCurrentGraph(rebuild rebuildFunc, b *broker, logger zerolog.Logger) {
	dot, err := rebuild()
	if err != nil {
		logger.Warn().Err(err).Msg("graph rebuild failed")
		return
	}
	b.publish(dot)
}

func isRelevantChange(event fsnotify.Event, exts map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return exts[strings.ToLower(filepath.Ext(event.Name))]
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return addWatchDirsWithAdder(root, watcher.Add)
}

// addWatchDirsWithAdder walks root and registers every directory that
// is not skipped. Paths that vanish mid-walk are tolerated.
func addWatchDirsWithAdder(root string, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := add(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		return nil
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = addWatchDirs(watcher, path)
	}
}
