package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle absorbs the burst of events a single editor save produces.
const watchSettle = 150 * time.Millisecond

// Watch reloads path with LoadFrom whenever it changes and hands the result
// to fn. The parent directory is watched so that editors which replace the
// file on save are still seen. Watch returns once the watcher is running;
// it stops when ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()

		settle := time.NewTimer(watchSettle)
		settle.Stop()
		defer settle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					settle.Reset(watchSettle)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fn(nil, fmt.Errorf("watching %s: %w", abs, err))
			case <-settle.C:
				fn(LoadFrom(abs))
			}
		}
	}()
	return nil
}
