// Package content renders content nodes as pages and streams their updates.
package content

import "github.com/go-chi/chi/v5"

// SetupRoutes registers content routes on the router.
func SetupRoutes(router chi.Router, cfg Config) error {
	handlers := NewHandlers(cfg)

	// Page routes (full page render)
	router.Get("/content/*", handlers.ContentPage)

	// SSE routes (long-lived streams)
	router.Get("/updates/content/*", handlers.ContentUpdates)

	return nil
}
