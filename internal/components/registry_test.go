package components

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/editable/internal/editable"
	"github.com/leapstack-labs/editable/pkg/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func testRegistry() *Registry {
	return NewRegistry(
		Definition{ResourceType: "site/components/text", Kind: KindText, Required: []string{"text"}, ForceReload: true},
		Definition{ResourceType: "site/components/title", Kind: KindTitle, EmptyLabel: "Title", ClassName: "title-wrap"},
		Definition{ResourceType: "site/components/image", Kind: KindImage},
	)
}

func TestRegistry_EditConfig(t *testing.T) {
	reg := testRegistry()

	text := reg.EditConfig("site/components/text")
	assert.Equal(t, "site/components/text", text.ResourceType)
	assert.True(t, text.ForceReload)
	assert.True(t, text.Empty(map[string]any{}))
	assert.True(t, text.Empty(map[string]any{"text": ""}))
	assert.False(t, text.Empty(map[string]any{"text": "Hello"}))

	title := reg.EditConfig("site/components/title")
	assert.Equal(t, "Title", title.EmptyLabel)
	assert.False(t, title.Empty(map[string]any{}))

	unknown := reg.EditConfig("site/components/unknown")
	assert.Equal(t, &core.EditConfig{ResourceType: "site/components/unknown"}, unknown)
}

func TestRegistry_ResourceTypes(t *testing.T) {
	assert.Equal(t, []string{
		"site/components/image",
		"site/components/text",
		"site/components/title",
	}, testRegistry().ResourceTypes())
}

func TestRegistry_Props(t *testing.T) {
	props := testRegistry().Props("site/components/title", "/content/page", "root/title")

	assert.Equal(t, "title-wrap", props.ClassName)
	assert.Equal(t, "/content/page/jcr:content/root/title", props.Path())
	assert.Equal(t, "site/components/title", props.EditConfig().ResourceType)
	require.IsType(t, editable.Single{}, props.Children)
}

func TestElements(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name         string
		resourceType string
		props        editable.ElementProps
		want         string
	}{
		{
			name:         "text is escaped",
			resourceType: "site/components/text",
			props:        editable.ElementProps{"text": "<b>Hi</b>"},
			want:         `<div class="cmp-text">&lt;b&gt;Hi&lt;/b&gt;</div>`,
		},
		{
			name:         "rich text is written as is",
			resourceType: "site/components/text",
			props:        editable.ElementProps{"text": "<b>Hi</b>", "richText": true},
			want:         `<div class="cmp-text"><b>Hi</b></div>`,
		},
		{
			name:         "title with heading type",
			resourceType: "site/components/title",
			props:        editable.ElementProps{"text": "Welcome", "type": "h1"},
			want:         `<h1 class="cmp-title">Welcome</h1>`,
		},
		{
			name:         "title falls back to h2",
			resourceType: "site/components/title",
			props:        editable.ElementProps{"text": "Welcome", "type": "script"},
			want:         `<h2 class="cmp-title">Welcome</h2>`,
		},
		{
			name:         "image",
			resourceType: "site/components/image",
			props:        editable.ElementProps{"src": "/a.png", "alt": "A"},
			want:         `<img class="cmp-image" src="/a.png" alt="A">`,
		},
		{
			name:         "image without source renders nothing",
			resourceType: "site/components/image",
			props:        editable.ElementProps{"alt": "A"},
			want:         ``,
		},
		{
			name:         "unknown types render generically",
			resourceType: "site/components/teaser",
			props:        editable.ElementProps{"b": 2, "a": "x", ":type": "t", core.PathProp: "/p"},
			want:         `<dl class="cmp-generic"><dt>a</dt><dd>x</dd><dt>b</dt><dd>2</dd></dl>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := reg.Element(tt.resourceType)
			el.Props = tt.props
			assert.Equal(t, tt.want, render(t, el.Component()))
		})
	}
}
