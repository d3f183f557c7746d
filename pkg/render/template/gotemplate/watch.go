package gotemplate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ErrNotWatchable is returned when the engine does not read templates from disk.
var ErrNotWatchable = errors.New("gotemplate: engine has no base dir to watch")

// Watch reloads the engine whenever a file under its base dir changes. It
// blocks until ctx is done. onReload, when set, is called after every reload
// with the event that triggered it; watcher errors are reported the same way
// with a zero event.
func (e *Engine) Watch(ctx context.Context, onReload func(fsnotify.Event, error)) error {
	if e == nil || e.baseDir == "" {
		return ErrNotWatchable
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("gotemplate: create watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(e.baseDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("gotemplate: watch %q: %w", e.baseDir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			e.Reload()
			if onReload != nil {
				onReload(event, nil)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onReload != nil {
				onReload(fsnotify.Event{}, werr)
			}
		}
	}
}
