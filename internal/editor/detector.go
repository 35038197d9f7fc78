package editor

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
)

// ModeParam is the query parameter carrying the authoring mode.
const ModeParam = "wcmmode"

// SessionName is the cookie session holding the authoring mode.
const SessionName = "editable"

const sessionModeKey = "wcmmode"

// Authoring modes.
const (
	ModeEdit     = "edit"
	ModePreview  = "preview"
	ModeDisabled = "disabled"
)

// Detector reports whether rendering happens inside the authoring tool.
type Detector func() bool

// Static returns a Detector that always reports v.
func Static(v bool) Detector {
	return func() bool { return v }
}

// IsEditorMode reports whether mode is hosted by the authoring tool.
// Preview counts as editor mode: the overlay stays attached.
func IsEditorMode(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeEdit, ModePreview:
		return true
	default:
		return false
	}
}

// ModeFromRequest returns the authoring mode for r: the query parameter
// first, then the session. It returns "" when neither is set.
func ModeFromRequest(r *http.Request, store sessions.Store) string {
	if mode := r.URL.Query().Get(ModeParam); mode != "" {
		return mode
	}
	if store == nil {
		return ""
	}
	session, err := store.Get(r, SessionName)
	if err != nil {
		return ""
	}
	mode, _ := session.Values[sessionModeKey].(string)
	return mode
}

// RequestDetector returns a Detector answering for request r.
func RequestDetector(r *http.Request, store sessions.Store) Detector {
	return func() bool {
		return IsEditorMode(ModeFromRequest(r, store))
	}
}

// SaveMode stores mode in the session. An empty mode clears it.
func SaveMode(w http.ResponseWriter, r *http.Request, store sessions.Store, mode string) error {
	session, err := store.Get(r, SessionName)
	if err != nil {
		// A stale cookie from another secret; start a fresh session.
		session, err = store.New(r, SessionName)
		if session == nil {
			return err
		}
	}
	if mode == "" {
		delete(session.Values, sessionModeKey)
	} else {
		session.Values[sessionModeKey] = mode
	}
	return session.Save(r, w)
}
