// Package ui serves rendered content nodes over HTTP.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/editable/internal/components"
	"github.com/leapstack-labs/editable/internal/editor"
	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/state"
	"github.com/leapstack-labs/editable/internal/ui/notifier"
	"github.com/leapstack-labs/editable/internal/ui/router"
)

// Server is the content server.
type Server struct {
	store         *modelstore.Store
	db            *state.SQLiteStore
	files         *modelstore.FileSource
	registry      *components.Registry
	updater       *editor.Updater
	sessionStore  *sessions.CookieStore
	addr          string
	watch         bool
	dev           bool
	renderTimeout time.Duration
	logger        *slog.Logger
	events        *notifier.Notifier
	changes       *notifier.Notifier
}

// Config holds configuration for the content server.
type Config struct {
	Store *modelstore.Store
	// DB and Files are optional. Files is required for Watch.
	DB            *state.SQLiteStore
	Files         *modelstore.FileSource
	Registry      *components.Registry
	Host          string
	Port          int
	Watch         bool
	Dev           bool
	SessionSecret string
	RenderTimeout time.Duration
	UpdateTimeout time.Duration
	Logger        *slog.Logger
}

// NewServer creates a new content server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	events := notifier.New()
	return &Server{
		store:    cfg.Store,
		db:       cfg.DB,
		files:    cfg.Files,
		registry: cfg.Registry,
		updater: editor.NewUpdater(editor.UpdaterConfig{
			Store:   cfg.Store,
			Events:  events,
			Timeout: cfg.UpdateTimeout,
			Logger:  logger,
		}),
		sessionStore:  sessionStore,
		addr:          fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		watch:         cfg.Watch,
		dev:           cfg.Dev,
		renderTimeout: cfg.RenderTimeout,
		logger:        logger,
		events:        events,
		changes:       notifier.New(),
	}
}

// Handler builds the HTTP handler of the server.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	err := router.SetupRoutes(r, router.Deps{
		Store:         s.store,
		DB:            s.db,
		Files:         s.files,
		Updater:       s.updater,
		Registry:      s.registry,
		Events:        s.events,
		Changes:       s.changes,
		SessionStore:  s.sessionStore,
		RenderTimeout: s.renderTimeout,
		Logger:        s.logger,
		IsDev:         s.dev,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	defer s.updater.Close()

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.logger.Info("starting content server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.files != nil {
		w := newContentWatcher(s.files, s.store, s.changes, s.logger)
		eg.Go(func() error {
			return w.Run(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down content server...")
		// Long-lived SSE streams end with the base context
		s.changes.Close()
		s.events.Close()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Changes returns the notifier pinged when content paths change.
func (s *Server) Changes() *notifier.Notifier {
	return s.changes
}
