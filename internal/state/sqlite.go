package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/editable/pkg/core"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists content models in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite state store instance.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// NewSQLiteStoreWithDB wraps an already-open database. Used by tests.
func NewSQLiteStoreWithDB(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	s := NewSQLiteStore(logger)
	s.db = db
	return s
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("opened state database", "path", path)
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveModel inserts or replaces the model stored for path.
func (s *SQLiteStore) SaveModel(ctx context.Context, path string, model core.Model) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	data, err := json.Marshal(core.OrEmpty(model))
	if err != nil {
		return fmt.Errorf("failed to encode model %q: %w", path, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO content_models (path, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		path, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save model %q: %w", path, err)
	}
	return nil
}

// GetModel returns the model stored for path, or ErrNotFound.
func (s *SQLiteStore) GetModel(ctx context.Context, path string) (core.Model, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM content_models WHERE path = ?`, path,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model %q: %w", path, err)
	}

	model := core.Model{}
	if err := json.Unmarshal([]byte(data), &model); err != nil {
		return nil, fmt.Errorf("failed to decode model %q: %w", path, err)
	}
	return model, nil
}

// ListModels returns all persisted model paths ordered by path.
func (s *SQLiteStore) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, length(data), updated_at FROM content_models ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []ModelInfo
	for rows.Next() {
		var info ModelInfo
		if err := rows.Scan(&info.Path, &info.Size, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan model row: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return infos, nil
}

// DeleteModel removes the model stored for path.
// Deleting a missing path returns ErrNotFound.
func (s *SQLiteStore) DeleteModel(ctx context.Context, path string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM content_models WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to delete model %q: %w", path, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
