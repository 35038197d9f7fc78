// Package home provides the content index page.
package home

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/editable/internal/ui/notifier"
)

// SetupRoutes registers home routes on the router.
func SetupRoutes(router chi.Router, lister Lister, notify *notifier.Notifier, isDev bool) error {
	handlers := NewHandlers(lister, notify, isDev)

	// Page routes (full page render)
	router.Get("/", handlers.HomePage)

	// SSE routes (long-lived streams)
	router.Get("/updates", handlers.HomePageUpdates)

	return nil
}
