// Package editor implements the collaborators a rendered node needs from its
// host: the model updater and authoring-mode detection.
package editor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/ui/notifier"
	"github.com/leapstack-labs/editable/pkg/core"
)

// DefaultUpdateTimeout bounds a single model refresh.
const DefaultUpdateTimeout = 10 * time.Second

// Loader is the part of the model store the updater reads from.
type Loader interface {
	GetData(ctx context.Context, path string, forceReload bool) (core.Model, error)
}

// UpdaterConfig holds the dependencies of an Updater.
type UpdaterConfig struct {
	Store Loader
	// Events is pinged after content loaded while in editor mode,
	// so the authoring overlay can refresh. Optional.
	Events  *notifier.Notifier
	Timeout time.Duration
	Logger  *slog.Logger
}

// Updater refreshes models asynchronously and delivers non-empty results.
type Updater struct {
	store   Loader
	events  *notifier.Notifier
	timeout time.Duration
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// mu orders wg.Add against Close's wg.Wait.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

var _ core.Updater = (*Updater)(nil)

// NewUpdater creates an Updater. Call Close to cancel in-flight refreshes.
func NewUpdater(cfg UpdaterConfig) *Updater {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultUpdateTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Updater{
		store:   cfg.Store,
		events:  cfg.Events,
		timeout: timeout,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// UpdateModel loads the model for req.Path in the background.
// Deliver is called once with a non-empty model, or never when the store has
// nothing for the path or the load fails. Failures are logged, not returned.
// Requests made after Close are dropped.
func (u *Updater) UpdateModel(req core.UpdateRequest) {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		u.logger.Debug("updater closed, dropping refresh", "path", req.Path)
		return
	}
	u.wg.Add(1)
	u.mu.Unlock()

	go func() {
		defer u.wg.Done()
		u.update(req)
	}()
}

func (u *Updater) update(req core.UpdateRequest) {
	ctx, cancel := context.WithTimeout(u.ctx, u.timeout)
	defer cancel()

	model, err := u.store.GetData(ctx, req.Path, req.ForceReload)
	switch {
	case errors.Is(err, modelstore.ErrNotFound):
		u.logger.Debug("no model for path", "path", req.Path)
		return
	case err != nil:
		u.logger.Warn("model refresh failed", "path", req.Path, "error", err)
		return
	case model.IsEmpty():
		return
	}

	if req.Deliver != nil {
		req.Deliver(model)
	}

	if req.IsInEditor && req.PagePath != "" && u.events != nil {
		u.events.Broadcast()
	}
}

// Wait blocks until all in-flight refreshes have finished.
func (u *Updater) Wait() {
	u.wg.Wait()
}

// Close cancels in-flight refreshes and waits for them to return.
// It is safe to call more than once.
func (u *Updater) Close() {
	u.mu.Lock()
	u.closed = true
	u.mu.Unlock()

	u.cancel()
	u.wg.Wait()
}
