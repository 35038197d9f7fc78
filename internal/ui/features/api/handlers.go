package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/pathutil"
	"github.com/leapstack-labs/editable/internal/state"
)

// maxModelSize bounds the body of a model update.
const maxModelSize = 1 << 20

// ModelEntry is one row of the model listing.
type ModelEntry struct {
	Path      string     `json:"path"`
	Size      int        `json:"size,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	Persisted bool       `json:"persisted"`
	Cached    bool       `json:"cached"`
}

// Handlers provides HTTP handlers for the model API.
type Handlers struct {
	store  *modelstore.Store
	db     *state.SQLiteStore
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance. db may be nil, in which case
// only cached models are listed.
func NewHandlers(store *modelstore.Store, db *state.SQLiteStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{store: store, db: db, logger: logger}
}

// GetModel returns the model at the requested content path.
// ?force=true bypasses the cache.
func (h *Handlers) GetModel(w http.ResponseWriter, r *http.Request) {
	path := modelPath(r)
	force := r.URL.Query().Get("force") == "true"

	model, err := h.store.GetData(r.Context(), path, force)
	if errors.Is(err, modelstore.ErrNotFound) {
		http.Error(w, "model not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, model)
}

// PutModel replaces the model at the requested content path. Nodes rendering
// that path are refreshed.
func (h *Handlers) PutModel(w http.ResponseWriter, r *http.Request) {
	path := modelPath(r)

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxModelSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	model, err := modelstore.DecodeModel(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.SetData(r.Context(), path, model); err != nil {
		h.logger.Error("failed to update model", "path", path, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.logger.Info("model updated", "path", path, "keys", len(model))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteModel removes the persisted model at the requested content path and
// drops it from the cache, so the next read falls back to the other sources.
func (h *Handlers) DeleteModel(w http.ResponseWriter, r *http.Request) {
	path := modelPath(r)

	if h.db != nil {
		err := h.db.DeleteModel(r.Context(), path)
		if errors.Is(err, state.ErrNotFound) {
			http.Error(w, "model not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	h.store.Invalidate(path)
	w.WriteHeader(http.StatusNoContent)
}

// ListModels lists persisted and cached models ordered by path.
func (h *Handlers) ListModels(w http.ResponseWriter, r *http.Request) {
	entries := make(map[string]*ModelEntry)

	if h.db != nil {
		infos, err := h.db.ListModels(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		for _, info := range infos {
			updated := info.UpdatedAt
			entries[info.Path] = &ModelEntry{
				Path:      info.Path,
				Size:      info.Size,
				UpdatedAt: &updated,
				Persisted: true,
			}
		}
	}

	for _, p := range h.store.Paths() {
		if e, ok := entries[p]; ok {
			e.Cached = true
			continue
		}
		entries[p] = &ModelEntry{Path: p, Cached: true}
	}

	list := make([]ModelEntry, 0, len(entries))
	for _, e := range entries {
		list = append(list, *e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })

	writeJSON(w, http.StatusOK, list)
}

// modelPath returns the content path addressed by the catch-all route param.
func modelPath(r *http.Request) string {
	return pathutil.Sanitize("/" + chi.URLParam(r, "*"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
