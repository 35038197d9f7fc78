package core

import "context"

// ListenerID identifies one listener registration in a ModelStore.
type ListenerID string

// ModelStore is the remote store of record for content models.
type ModelStore interface {
	// GetData returns the model for path. forceReload bypasses any cache.
	GetData(ctx context.Context, path string, forceReload bool) (Model, error)

	// AddListener registers onChange to be called whenever the model at path changes.
	AddListener(path string, onChange func()) ListenerID

	// RemoveListener removes a registration created by AddListener.
	RemoveListener(path string, id ListenerID)
}

// UpdateRequest asks an Updater to refresh the model for a path.
type UpdateRequest struct {
	Path        string
	ForceReload bool
	// Deliver receives the refreshed model. It is called at most once.
	Deliver    func(Model)
	IsInEditor bool
	PagePath   string
}

// Updater refreshes models on behalf of rendered nodes.
// UpdateModel must not block; results arrive through UpdateRequest.Deliver.
type Updater interface {
	UpdateModel(req UpdateRequest)
}
