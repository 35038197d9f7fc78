//go:build !dev

package resources

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"net/http"
	"sync"
)

//go:embed static/*
var staticFS embed.FS

var (
	assetsOnce sync.Once
	assets     fs.FS
	versions   map[string]string
)

// loadAssets hashes every embedded asset once. The hash versions asset URLs
// so the long-lived cache is dropped whenever a build changes a file.
func loadAssets() {
	assetsOnce.Do(func() {
		sub, err := fs.Sub(staticFS, "static")
		if err != nil {
			panic(err) // static/ is embedded above
		}
		assets = sub
		versions = make(map[string]string)
		_ = fs.WalkDir(sub, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := fs.ReadFile(sub, path)
			if err != nil {
				return err
			}
			sum := sha256.Sum256(data)
			versions[path] = hex.EncodeToString(sum[:4])
			return nil
		})
	})
}

// Handler returns an HTTP handler for serving the embedded static files.
func Handler() http.Handler {
	loadAssets()
	fileServer := http.StripPrefix("/static/", http.FileServerFS(assets))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// URLs are content-versioned, so embedded assets can be cached for good
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fileServer.ServeHTTP(w, r)
	})
}

// StaticPath returns the versioned URL path for a static asset.
func StaticPath(path string) string {
	loadAssets()
	if v, ok := versions[path]; ok {
		return "/static/" + path + "?v=" + v
	}
	return "/static/" + path
}
