package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/ehrlich-b/ask/internal/logger"
)

// eventBuffer holds the bursts a single save produces (temp file create,
// write, chmod, rename) plus any outside write.
const eventBuffer = 64

// Watcher notices writes to the replay file made by other processes. Events
// are drained in the background; Changed never blocks.
type Watcher struct {
	store   *Store
	fsw     *fsnotify.Watcher
	name    string
	touched atomic.Bool
	done    sync.WaitGroup
}

// Watch starts watching the directory holding the store's file. The
// directory is created if needed so a first save can be observed.
func Watch(store *Store) (*Watcher, error) {
	dir := filepath.Dir(store.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	fsw, err := fsnotify.NewBufferedWatcher(eventBuffer)
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		store: store,
		fsw:   fsw,
		name:  filepath.Clean(store.Path()),
	}
	w.done.Add(1)
	go w.drain()
	return w, nil
}

func (w *Watcher) drain() {
	defer w.done.Done()
	events, errs := w.fsw.Events, w.fsw.Errors
	for events != nil || errs != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Clean(ev.Name) == w.name && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.touched.Store(true)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("replay watcher error", "error", err)
		}
	}
}

// Changed reports whether the replay file was modified by someone other
// than the store since the last call. It must be called from the goroutine
// that uses the store.
func (w *Watcher) Changed() bool {
	touched := w.touched.Swap(false)
	if !touched && !w.store.outside {
		return false
	}
	// Our own atomic renames also fire events; the stat comparison filters them.
	changed, err := w.store.Modified()
	if err != nil {
		logger.Warn("replay file stat failed", "error", err)
		return false
	}
	if changed {
		logger.Info("replay file modified externally", "path", w.name)
	}
	return changed
}

func (w *Watcher) Close() error {
	err := w.fsw.Close()
	w.done.Wait()
	return err
}
