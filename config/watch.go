// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/watch.go
// Summary: Debounced file watcher used for theme hot reload.
// Usage: Watch(ctx, paths, debounce, fn) blocks until ctx is done; fn runs once per burst of changes.
// Notes: Parent directories are watched so editors that replace files by rename are still seen.

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups the writes of a single save.
const DefaultDebounce = 150 * time.Millisecond

// Watch calls fn with the changed paths after each burst of writes to any of
// paths. It returns when ctx is cancelled or the watcher fails.
func Watch(ctx context.Context, paths []string, debounce time.Duration, fn func(changed []string)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	wanted := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		cfgLog.Debugf("Config: Watching %s", dir)
	}

	var (
		mu      sync.Mutex
		timer   *time.Timer
		pending = make(map[string]bool)
	)
	fire := func() {
		mu.Lock()
		changed := make([]string, 0, len(pending))
		for p := range pending {
			changed = append(changed, p)
		}
		pending = make(map[string]bool)
		mu.Unlock()
		if len(changed) > 0 && ctx.Err() == nil {
			fn(changed)
		}
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cfgLog.Warnf("Config: Watcher error: %v", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !wanted[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			mu.Lock()
			pending[filepath.Clean(ev.Name)] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, fire)
			mu.Unlock()
		}
	}
}
