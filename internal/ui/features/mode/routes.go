// Package mode switches the authoring mode stored in the user's session.
package mode

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

// SetupRoutes registers the authoring mode routes on the router.
func SetupRoutes(router chi.Router, sessionStore sessions.Store) error {
	handlers := NewHandlers(sessionStore)

	router.Get("/editor/mode", handlers.GetMode)
	router.Post("/editor/mode", handlers.SetMode)

	return nil
}
