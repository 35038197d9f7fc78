// Package router sets up HTTP routes for the content server.
package router

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/editable/internal/components"
	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/state"
	apiFeature "github.com/leapstack-labs/editable/internal/ui/features/api"
	contentFeature "github.com/leapstack-labs/editable/internal/ui/features/content"
	homeFeature "github.com/leapstack-labs/editable/internal/ui/features/home"
	modeFeature "github.com/leapstack-labs/editable/internal/ui/features/mode"
	"github.com/leapstack-labs/editable/internal/ui/notifier"
	"github.com/leapstack-labs/editable/internal/ui/resources"
	"github.com/leapstack-labs/editable/pkg/core"
)

// Deps holds everything the feature routes need.
type Deps struct {
	Store *modelstore.Store
	// DB and Files are optional.
	DB       *state.SQLiteStore
	Files    *modelstore.FileSource
	Updater  core.Updater
	Registry *components.Registry
	// Events carries "async content loaded" pings.
	Events *notifier.Notifier
	// Changes is pinged when the set of content paths may have changed.
	Changes       *notifier.Notifier
	SessionStore  sessions.Store
	RenderTimeout time.Duration
	Logger        *slog.Logger
	IsDev         bool
}

// SetupRoutes configures all routes for the content server.
func SetupRoutes(router chi.Router, deps Deps) error {
	// Hot reload endpoint for dev mode
	if deps.IsDev {
		setupReload(router)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	catalog := modelstore.Catalog{Store: deps.Store, Files: deps.Files, DB: deps.DB}
	if err := homeFeature.SetupRoutes(router, catalog, deps.Changes, deps.IsDev); err != nil {
		return err
	}

	if err := contentFeature.SetupRoutes(router, contentFeature.Config{
		Store:         deps.Store,
		Updater:       deps.Updater,
		Registry:      deps.Registry,
		Events:        deps.Events,
		SessionStore:  deps.SessionStore,
		RenderTimeout: deps.RenderTimeout,
		Logger:        deps.Logger,
		IsDev:         deps.IsDev,
	}); err != nil {
		return err
	}

	if err := apiFeature.SetupRoutes(router, deps.Store, deps.DB, deps.Logger); err != nil {
		return err
	}

	if err := modeFeature.SetupRoutes(router, deps.SessionStore); err != nil {
		return err
	}

	return nil
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
