//go:build dev

package resources

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"runtime"
)

// staticDir is the static/ directory next to this file, so edits to the
// stylesheet show up without a rebuild wherever the binary runs from.
func staticDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return StaticDirectoryPath
	}
	return filepath.Join(filepath.Dir(filename), "static")
}

// Handler returns an HTTP handler serving static files from the filesystem.
func Handler() http.Handler {
	dir := staticDir()
	slog.Info("static assets served from filesystem", "path", dir)
	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(dir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}

// StaticPath returns the URL path for a static asset. Dev paths are not
// versioned; every request revalidates.
func StaticPath(path string) string {
	return "/static/" + path
}
