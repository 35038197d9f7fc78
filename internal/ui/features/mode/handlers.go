package mode

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/editable/internal/editor"
)

// Signals are the client signals posted to SetMode.
type Signals struct {
	Mode string `json:"mode"`
}

// Status reports the authoring mode of the current session.
type Status struct {
	Mode   string `json:"mode"`
	Editor bool   `json:"editor"`
}

// Handlers provides HTTP handlers for the mode feature.
type Handlers struct {
	sessionStore sessions.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessionStore sessions.Store) *Handlers {
	return &Handlers{sessionStore: sessionStore}
}

// GetMode returns the current authoring mode as JSON.
func (h *Handlers) GetMode(w http.ResponseWriter, r *http.Request) {
	m := editor.ModeFromRequest(r, h.sessionStore)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Status{Mode: m, Editor: editor.IsEditorMode(m)})
}

// SetMode stores the posted mode in the session and reloads the page.
// An empty mode clears it.
func (h *Handlers) SetMode(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	switch signals.Mode {
	case "", editor.ModeEdit, editor.ModePreview, editor.ModeDisabled:
	default:
		http.Error(w, fmt.Sprintf("unknown mode %q", signals.Mode), http.StatusBadRequest)
		return
	}

	// The session cookie must be written before the SSE headers
	if err := editor.SaveMode(w, r, h.sessionStore, signals.Mode); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.ExecuteScript("window.location.reload()"); err != nil {
		_ = sse.ConsoleError(err)
	}
}
