package modelstore

import (
	"context"
	"sort"

	"github.com/leapstack-labs/editable/internal/state"
)

// Catalog lists the content paths known to any layer. Nil layers are skipped.
type Catalog struct {
	Store *Store
	Files *FileSource
	DB    *state.SQLiteStore
}

// ContentPaths returns the union of cached, file and persisted paths, sorted.
func (c Catalog) ContentPaths(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})

	if c.Store != nil {
		for _, p := range c.Store.Paths() {
			seen[p] = struct{}{}
		}
	}
	if c.Files != nil {
		paths, err := c.Files.List()
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			seen[p] = struct{}{}
		}
	}
	if c.DB != nil {
		infos, err := c.DB.ListModels(ctx)
		if err != nil {
			return nil, err
		}
		for _, info := range infos {
			seen[info.Path] = struct{}{}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
