//go:build !dev

package resources

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_ServesEmbeddedAssets(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, StaticPath("editable.css"), nil)
	rec := httptest.NewRecorder()

	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cq-placeholder")
	assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")
}

func TestStaticPath_Versioned(t *testing.T) {
	path := StaticPath("editable.css")
	assert.Regexp(t, `^/static/editable\.css\?v=[0-9a-f]{8}$`, path)
	assert.Equal(t, path, StaticPath("editable.css"), "versions are stable")

	assert.Equal(t, "/static/missing.js", StaticPath("missing.js"))
}

func TestHandler_MissingAsset(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, StaticPath("missing.js"), nil)
	rec := httptest.NewRecorder()

	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
