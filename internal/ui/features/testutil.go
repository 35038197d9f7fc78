// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/editable/internal/components"
	"github.com/leapstack-labs/editable/internal/editor"
	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/state"
	"github.com/leapstack-labs/editable/internal/testutil"
	"github.com/leapstack-labs/editable/internal/ui/notifier"
	"github.com/leapstack-labs/editable/pkg/core"
)

// Resource types registered by the test fixture.
const (
	TextType  = "site/components/text"
	TitleType = "site/components/title"
)

// TestModel is a model document written to the fixture's content directory.
type TestModel struct {
	Path string
	Type string
	Data map[string]any
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Store        *modelstore.Store
	State        *state.SQLiteStore
	Files        modelstore.FileSource
	Updater      *editor.Updater
	Registry     *components.Registry
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Logger       *slog.Logger
}

// SetupTestFixture creates a model store backed by an in-memory state
// database and a temp content directory holding models.
func SetupTestFixture(t *testing.T, models ...TestModel) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	db := state.NewSQLiteStore(logger)
	require.NoError(t, db.Open(":memory:"))
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	files := modelstore.FileSource{Dir: t.TempDir()}
	for _, m := range models {
		WriteModelFile(t, files, m)
	}

	store := modelstore.New(modelstore.Config{
		Sources:   []modelstore.Source{modelstore.PersistedSource{Store: db}, files},
		Persister: db,
		Logger:    logger,
	})

	events := notifier.New()
	updater := editor.NewUpdater(editor.UpdaterConfig{
		Store:   store,
		Events:  events,
		Timeout: time.Second,
		Logger:  logger,
	})
	t.Cleanup(updater.Close)

	registry := components.NewRegistry(
		components.Definition{ResourceType: TextType, Kind: components.KindText, Required: []string{"text"}},
		components.Definition{ResourceType: TitleType, Kind: components.KindTitle, EmptyLabel: "Title"},
	)

	return &TestFixture{
		Store:        store,
		State:        db,
		Files:        files,
		Updater:      updater,
		Registry:     registry,
		Notifier:     events,
		SessionStore: NewTestSessionStore(),
		Logger:       logger,
	}
}

// WriteModelFile writes m as a model document below the content directory.
func WriteModelFile(t *testing.T, files modelstore.FileSource, m TestModel) {
	t.Helper()

	model := core.Model{}
	for k, v := range m.Data {
		model[k] = v
	}
	if m.Type != "" {
		model[core.TypeKey] = m.Type
	}

	file, err := files.FileFor(m.Path)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0750))

	data, err := json.Marshal(model)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, data, 0600))
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithWildcard wraps a request with the chi catch-all param.
func RequestWithWildcard(r *http.Request, value string) *http.Request {
	return RequestWithPathParam(r, "*", value)
}

// RequestWithTimeout wraps a request with a context timeout that is
// cancelled when the test ends.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	t.Helper()
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
