package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// packageImports returns the imports of every non-test file in dir, by file name.
func packageImports(t *testing.T, dir string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	imports := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			imports[entry.Name()] = append(imports[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return imports
}

// TestCoreImportsOnly verifies pkg/core only imports the standard library.
func TestCoreImportsOnly(t *testing.T) {
	for file, imports := range packageImports(t, ".") {
		for _, importPath := range imports {
			// stdlib paths have no dot in their first element
			if strings.Contains(strings.SplitN(importPath, "/", 2)[0], ".") {
				t.Errorf("%s imports forbidden package: %s", file, importPath)
			}
		}
	}
}

// TestRendererIsStoreAgnostic verifies the renderer core reaches the store,
// the updater and the transport only through pkg/core interfaces.
func TestRendererIsStoreAgnostic(t *testing.T) {
	forbidden := []string{
		"net/http",
		"/internal/modelstore",
		"/internal/state",
		"/internal/editor",
		"/internal/components",
		"/internal/ui/features",
		"/internal/ui/router",
	}

	for file, imports := range packageImports(t, filepath.Join("..", "..", "internal", "editable")) {
		for _, importPath := range imports {
			for _, f := range forbidden {
				if importPath == f || strings.HasSuffix(importPath, f) {
					t.Errorf("internal/editable/%s imports %s", file, importPath)
				}
			}
		}
	}
}
