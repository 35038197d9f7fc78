package modelstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/leapstack-labs/editable/internal/pathutil"
	"github.com/leapstack-labs/editable/internal/state"
	"github.com/leapstack-labs/editable/pkg/core"
)

// ModelSuffix is appended to a content path to address its model document.
const ModelSuffix = ".model.json"

// rootModelFile holds the model of the empty (root) content path.
const rootModelFile = "root" + ModelSuffix

// FileSource reads models from <Dir><path>.model.json.
type FileSource struct {
	Dir string
}

// Fetch implements Source.
func (f FileSource) Fetch(_ context.Context, path string) (core.Model, error) {
	file, err := f.FileFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	return DecodeModel(data)
}

// FileFor returns the model file for a content path.
// Paths escaping Dir are rejected.
func (f FileSource) FileFor(path string) (string, error) {
	path = pathutil.Sanitize(path)
	if path == "" || path == "/" {
		return filepath.Join(f.Dir, rootModelFile), nil
	}

	file := filepath.Join(f.Dir, filepath.FromSlash(strings.TrimPrefix(path, "/"))+ModelSuffix)
	rel, err := filepath.Rel(f.Dir, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %q is outside the content directory", path)
	}
	return file, nil
}

// PathFor maps a model file below Dir back to its content path.
// It reports false for files that are not model documents.
func (f FileSource) PathFor(file string) (string, bool) {
	rel, err := filepath.Rel(f.Dir, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasSuffix(rel, ModelSuffix) {
		return "", false
	}
	if rel == rootModelFile {
		return "", true
	}
	return "/" + strings.TrimSuffix(rel, ModelSuffix), true
}

// List returns the content paths of all model files below Dir, sorted.
// A missing Dir lists nothing.
func (f FileSource) List() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(f.Dir, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && file == f.Dir {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if p, ok := f.PathFor(file); ok {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list models in %s: %w", f.Dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// HTTPSource fetches models from a remote content host.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource creates an HTTPSource with a bounded client timeout.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// Fetch implements Source.
func (h *HTTPSource) Fetch(ctx context.Context, path string) (core.Model, error) {
	url := h.BaseURL + pathutil.Sanitize(path) + ModelSuffix
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return DecodeModel(data)
}

// PersistedSource serves models saved in the state database.
type PersistedSource struct {
	Store *state.SQLiteStore
}

// Fetch implements Source.
func (p PersistedSource) Fetch(ctx context.Context, path string) (core.Model, error) {
	model, err := p.Store.GetModel(ctx, path)
	if errors.Is(err, state.ErrNotFound) {
		return nil, ErrNotFound
	}
	return model, err
}

// DecodeModel parses a JSON model document. A JSON null decodes to an empty model.
func DecodeModel(data []byte) (core.Model, error) {
	var model core.Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("invalid model document: %w", err)
	}
	return core.OrEmpty(model), nil
}
