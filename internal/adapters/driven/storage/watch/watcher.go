// Package watch notifies long-running surfaces when the on-disk
// artifact is replaced. Rebuilds swap the artifact in with a rename,
// so the watcher listens on the parent directory and filters events
// down to the artifact file itself.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a single artifact path for replacement.
type Watcher struct {
	path string

	mu     sync.Mutex
	closed bool
	fw     *fsnotify.Watcher
}

// New creates a watcher for the artifact at path. The file does not
// need to exist yet, but its parent directory does.
func New(path string) *Watcher {
	return &Watcher{path: path}
}

// Watch starts watching and returns a channel that receives a signal
// each time the artifact file is created, written or renamed into
// place. The channel closes when ctx is cancelled or the watcher is
// closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, fmt.Errorf("watcher is closed")
	}
	if w.fw != nil {
		return nil, fmt.Errorf("watcher already started")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.fw = fw

	changes := make(chan struct{}, 1)
	base := filepath.Base(w.path)

	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				// Coalesce bursts: drop the signal if one is
				// already pending.
				select {
				case changes <- struct{}{}:
				default:
				}
			case _, ok := <-fw.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

// Close stops the watcher. Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.fw != nil {
		return w.fw.Close()
	}
	return nil
}
