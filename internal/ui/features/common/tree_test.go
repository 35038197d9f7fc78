package common

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFolder(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/content/site/en/jcr:content/root/title", "/content/site/en"},
		{"/content/site/en", "/content/site"},
		{"/content", "/"},
		{"root", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFolder(tt.path))
		})
	}
}

func TestBuildContentTree(t *testing.T) {
	tree := BuildContentTree([]string{
		"/content/site/en/jcr:content/root/text",
		"/content/site/en/jcr:content/root/title",
		"/content/site/de",
		"/content/site/en",
	})

	require.Len(t, tree, 2)

	assert.Equal(t, "/content/site", tree[0].Name)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "de", tree[0].Children[0].Name)
	assert.Equal(t, "en", tree[0].Children[1].Name)

	assert.Equal(t, "/content/site/en", tree[1].Name)
	require.Len(t, tree[1].Children, 2)
	assert.Equal(t, "jcr:content/root/text", tree[1].Children[0].Name)
	assert.Equal(t, "/content/site/en/jcr:content/root/title", tree[1].Children[1].Path)
}

func TestPage(t *testing.T) {
	var b strings.Builder
	err := Page(PageData{Title: "Home", IsDev: true, Authoring: true}, ContentTree(nil)).Render(context.Background(), &b)
	require.NoError(t, err)

	body := b.String()
	assert.True(t, strings.HasPrefix(body, "<!doctype html>"))
	assert.Contains(t, body, "<title>Home - Editable</title>")
	assert.Contains(t, body, `class="editable editable-authoring"`)
	assert.Contains(t, body, `@get('/reload')`)
	assert.Contains(t, body, `/static/editable.css`)
	assert.Contains(t, body, `<nav id="content-tree">`)
}
