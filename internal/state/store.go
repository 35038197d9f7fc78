// Package state persists content models in SQLite.
//
// Models are stored as JSON documents keyed by content path. The model store
// uses this package both as a read-through source and as the write target
// for out-of-band model updates.
package state

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no model is stored for a path.
var ErrNotFound = errors.New("model not found")

// ModelInfo describes a persisted model without its data.
type ModelInfo struct {
	Path      string
	Size      int
	UpdatedAt time.Time
}
