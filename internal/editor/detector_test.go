package editor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEditorMode(t *testing.T) {
	tests := []struct {
		mode string
		want bool
	}{
		{"edit", true},
		{"EDIT", true},
		{" preview ", true},
		{"disabled", false},
		{"", false},
		{"bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEditorMode(tt.mode))
		})
	}
}

func TestStatic(t *testing.T) {
	assert.True(t, Static(true)())
	assert.False(t, Static(false)())
}

func TestModeFromRequest_QueryParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/content/page?wcmmode=edit", nil)

	assert.Equal(t, ModeEdit, ModeFromRequest(req, nil))
	assert.True(t, RequestDetector(req, nil)())
}

func TestModeFromRequest_Session(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))

	// Save edit mode into a session cookie
	saveReq := httptest.NewRequest(http.MethodPost, "/editor/mode", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, SaveMode(rec, saveReq, store, ModeEdit))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/content/page", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	assert.Equal(t, ModeEdit, ModeFromRequest(req, store))
	assert.True(t, RequestDetector(req, store)())

	// The query parameter overrides the session
	override := httptest.NewRequest(http.MethodGet, "/content/page?wcmmode=disabled", nil)
	for _, c := range cookies {
		override.AddCookie(c)
	}
	assert.False(t, RequestDetector(override, store)())
}

func TestModeFromRequest_NoSession(t *testing.T) {
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
	req := httptest.NewRequest(http.MethodGet, "/content/page", nil)

	assert.Empty(t, ModeFromRequest(req, store))
	assert.False(t, RequestDetector(req, store)())
}
