// Package modelstore is the store of record for content models.
//
// The Store caches models by content path, loads misses from a chain of
// sources, persists writes, and notifies path-scoped listeners whenever the
// model at a path changes. The listener registry is shared by every rendered
// node; each registration is identified by its own ListenerID so removing
// one never affects another.
package modelstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/leapstack-labs/editable/pkg/core"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when no source has a model for a path.
var ErrNotFound = errors.New("model not found")

// Source loads models on cache misses.
// Implementations return ErrNotFound when they have no model for path.
type Source interface {
	Fetch(ctx context.Context, path string) (core.Model, error)
}

// Persister stores models written through SetData.
type Persister interface {
	SaveModel(ctx context.Context, path string, model core.Model) error
}

// Config holds the dependencies of a Store.
type Config struct {
	// Sources are consulted in order; the first hit wins.
	Sources   []Source
	Persister Persister
	Logger    *slog.Logger
}

// Store caches models and dispatches change notifications.
type Store struct {
	mu    sync.RWMutex
	cache map[string]core.Model
	// versions counts writes and invalidations per path. A load only fills
	// the cache when no write happened while it was fetching.
	versions  map[string]uint64
	listeners map[string]map[core.ListenerID]func()

	sources   []Source
	persister Persister
	loads     singleflight.Group
	logger    *slog.Logger
}

var _ core.ModelStore = (*Store)(nil)

// New creates a Store.
func New(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		cache:     make(map[string]core.Model),
		versions:  make(map[string]uint64),
		listeners: make(map[string]map[core.ListenerID]func()),
		sources:   cfg.Sources,
		persister: cfg.Persister,
		logger:    logger,
	}
}

// GetData returns the model for path. Cached models are served unless
// forceReload is set. Concurrent loads of the same path share one fetch.
// The returned model is a copy owned by the caller.
func (s *Store) GetData(ctx context.Context, path string, forceReload bool) (core.Model, error) {
	if !forceReload {
		s.mu.RLock()
		cached, ok := s.cache[path]
		s.mu.RUnlock()
		if ok {
			return cached.Clone(), nil
		}
	}

	v, err, shared := s.loads.Do(path, func() (any, error) {
		return s.load(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("joined in-flight model load", "path", path)
	}
	return v.(core.Model).Clone(), nil
}

func (s *Store) load(ctx context.Context, path string) (core.Model, error) {
	s.mu.RLock()
	version := s.versions[path]
	s.mu.RUnlock()

	for _, src := range s.sources {
		model, err := src.Fetch(ctx, path)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load model %q: %w", path, err)
		}

		model = core.OrEmpty(model)
		s.mu.Lock()
		if s.versions[path] != version {
			current, ok := s.cache[path]
			s.mu.Unlock()
			s.logger.Debug("discarding load overtaken by a write", "path", path)
			if ok {
				return current, nil
			}
			return model, nil
		}
		s.cache[path] = model
		s.mu.Unlock()

		s.logger.Debug("loaded model", "path", path, "keys", len(model))
		return model, nil
	}

	s.mu.RLock()
	current, ok := s.cache[path]
	changed := s.versions[path] != version
	s.mu.RUnlock()
	if changed && ok {
		return current, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// SetData replaces the model at path and notifies the path's listeners.
func (s *Store) SetData(ctx context.Context, path string, model core.Model) error {
	model = core.OrEmpty(model).Clone()

	if s.persister != nil {
		if err := s.persister.SaveModel(ctx, path, model); err != nil {
			return fmt.Errorf("failed to persist model %q: %w", path, err)
		}
	}

	s.mu.Lock()
	s.cache[path] = model
	s.versions[path]++
	s.mu.Unlock()
	s.loads.Forget(path)

	s.logger.Debug("model updated", "path", path, "keys", len(model))
	s.notify(path)
	return nil
}

// Invalidate drops the cached model at path and notifies its listeners,
// so the next GetData reloads from the sources.
func (s *Store) Invalidate(path string) {
	s.mu.Lock()
	delete(s.cache, path)
	s.versions[path]++
	s.mu.Unlock()
	s.loads.Forget(path)

	s.notify(path)
}

// Paths returns the cached content paths in sorted order.
func (s *Store) Paths() []string {
	s.mu.RLock()
	paths := make([]string, 0, len(s.cache))
	for p := range s.cache {
		paths = append(paths, p)
	}
	s.mu.RUnlock()

	sort.Strings(paths)
	return paths
}

// AddListener registers onChange for changes of the model at path.
func (s *Store) AddListener(path string, onChange func()) core.ListenerID {
	id := core.ListenerID(uuid.NewString())

	s.mu.Lock()
	byID, ok := s.listeners[path]
	if !ok {
		byID = make(map[core.ListenerID]func())
		s.listeners[path] = byID
	}
	byID[id] = onChange
	s.mu.Unlock()

	s.logger.Debug("listener added", "path", path, "id", id)
	return id
}

// RemoveListener removes the registration id for path.
// Removing an unknown registration is a no-op.
func (s *Store) RemoveListener(path string, id core.ListenerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.listeners[path]
	if !ok {
		return
	}
	delete(byID, id)
	if len(byID) == 0 {
		delete(s.listeners, path)
	}
	s.logger.Debug("listener removed", "path", path, "id", id)
}

// ListenerCount returns the number of registrations for path.
func (s *Store) ListenerCount(path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners[path])
}

// notify calls the listeners of path outside the registry lock, so
// callbacks may add or remove registrations.
func (s *Store) notify(path string) {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.listeners[path]))
	for _, fn := range s.listeners[path] {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
