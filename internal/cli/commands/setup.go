package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/editable/internal/cli/config"
	"github.com/leapstack-labs/editable/internal/components"
	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/pathutil"
	"github.com/leapstack-labs/editable/internal/state"
)

// errNoConfig is returned when a command runs without the root command's
// config loading.
var errNoConfig = errors.New("configuration not loaded")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	DB       *state.SQLiteStore
	Files    *modelstore.FileSource
	Store    *modelstore.Store
	Registry *components.Registry
}

// NewCommandContext opens the state database and builds the model store.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.GetConfig(cmd.Context())
	if cfg == nil {
		return nil, nil, errNoConfig
	}
	logger := config.GetLogger(cmd.Context())

	db, err := openState(cfg.StatePath, logger)
	if err != nil {
		return nil, nil, err
	}

	files := &modelstore.FileSource{Dir: cfg.ContentDir}
	sources := []modelstore.Source{modelstore.PersistedSource{Store: db}, files}
	if cfg.RemoteURL != "" {
		sources = append(sources, modelstore.NewHTTPSource(cfg.RemoteURL, cfg.Store.FetchTimeout))
	}

	store := modelstore.New(modelstore.Config{
		Sources:   sources,
		Persister: db,
		Logger:    logger,
	})

	cleanup := func() {
		_ = db.Close()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		DB:       db,
		Files:    files,
		Store:    store,
		Registry: cfg.Registry(),
	}, cleanup, nil
}

// openState opens and migrates the state database at path.
func openState(path string, logger *slog.Logger) (*state.SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create state directory: %w", err)
			}
		}
	}

	db := state.NewSQLiteStore(logger)
	if err := db.Open(path); err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate state database: %w", err)
	}
	return db, nil
}

// contentPath normalizes a content path argument. The leading slash is optional.
func contentPath(arg string) string {
	return pathutil.Sanitize("/" + arg)
}
