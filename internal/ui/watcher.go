package ui

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/ui/notifier"
)

const watchDebounce = 100 * time.Millisecond

// contentWatcher loads changed model files into the store.
type contentWatcher struct {
	files   *modelstore.FileSource
	store   *modelstore.Store
	changes *notifier.Notifier
	logger  *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func newContentWatcher(files *modelstore.FileSource, store *modelstore.Store, changes *notifier.Notifier, logger *slog.Logger) *contentWatcher {
	return &contentWatcher{
		files:   files,
		store:   store,
		changes: changes,
		logger:  logger,
		pending: make(map[string]*time.Timer),
	}
}

// Run watches the content directory until ctx is cancelled.
func (w *contentWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()
	defer w.stopPending()

	if err := watchDirRecursive(watcher, w.files.Dir); err != nil {
		w.logger.Error("failed to watch content directory", "dir", w.files.Dir, "error", err)
		// Don't fail - continue without watching
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDirRecursive(watcher, event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// schedule debounces changes per file.
func (w *contentWatcher) schedule(ctx context.Context, file string) {
	if _, ok := w.files.PathFor(file); !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[file]; ok {
		t.Stop()
	}
	w.pending[file] = time.AfterFunc(watchDebounce, func() {
		w.mu.Lock()
		delete(w.pending, file)
		w.mu.Unlock()

		w.reload(ctx, file)
	})
}

func (w *contentWatcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for file, t := range w.pending {
		t.Stop()
		delete(w.pending, file)
	}
}

// reload loads file into the store, or invalidates its path when the file is
// gone, and pings the change notifier.
func (w *contentWatcher) reload(ctx context.Context, file string) {
	path, ok := w.files.PathFor(file)
	if !ok {
		return
	}

	model, err := w.files.Fetch(ctx, path)
	switch {
	case errors.Is(err, modelstore.ErrNotFound):
		w.logger.Debug("model file removed", "file", file, "path", path)
		w.store.Invalidate(path)
	case err != nil:
		w.logger.Warn("failed to load model file", "file", file, "error", err)
		return
	default:
		if err := w.store.SetData(ctx, path, model); err != nil {
			w.logger.Error("failed to update model", "path", path, "error", err)
			return
		}
		w.logger.Debug("model file changed", "file", file, "path", path)
	}

	w.changes.Broadcast()
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
