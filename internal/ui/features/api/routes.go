// Package api exposes content models as JSON for tooling and out-of-band edits.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/state"
)

// SetupRoutes registers the model API on the router.
func SetupRoutes(router chi.Router, store *modelstore.Store, db *state.SQLiteStore, logger *slog.Logger) error {
	handlers := NewHandlers(store, db, logger)

	router.Route("/api", func(r chi.Router) {
		r.Get("/models", handlers.ListModels)
		r.Get("/model/*", handlers.GetModel)
		r.Put("/model/*", handlers.PutModel)
		r.Delete("/model/*", handlers.DeleteModel)
	})

	return nil
}
