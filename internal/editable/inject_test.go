package editable

import (
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/editable/pkg/core"
)

func TestComponentProps(t *testing.T) {
	props := ComponentProps("/content/p", core.Model{"title": "Hi"})
	assert.Equal(t, map[string]any{core.PathProp: "/content/p", "title": "Hi"}, props)
}

func TestComponentProps_ModelWinsOnCollision(t *testing.T) {
	props := ComponentProps("/content/p", core.Model{core.PathProp: "/from/model"})
	assert.Equal(t, "/from/model", props[core.PathProp])
}

func TestComponentProps_NilModel(t *testing.T) {
	props := ComponentProps("/content/p", nil)
	assert.Equal(t, map[string]any{core.PathProp: "/content/p"}, props)
}

func TestInject(t *testing.T) {
	base := propsElement()
	base.Props = ElementProps{"existing": "kept", "title": "overridden"}
	model := core.Model{"title": "Hi"}

	tests := []struct {
		name     string
		children Content
		pagePath string
		want     ElementProps
	}{
		{
			name:     "single child with page path gets path and model",
			children: Single{Element: base},
			pagePath: "/content/page",
			want:     ElementProps{"existing": "kept", "title": "Hi", core.PathProp: "/content/page/jcr:content/item"},
		},
		{
			name:     "single child without page path gets the raw model",
			children: Single{Element: base},
			want:     ElementProps{"existing": "kept", "title": "Hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Inject(tt.children, model, "/content/page/jcr:content/item", tt.pagePath)
			single, ok := got.(Single)
			require.True(t, ok)
			assert.Equal(t, tt.want, single.Element.Props)
		})
	}

	// The element itself is left unmodified
	assert.Equal(t, ElementProps{"existing": "kept", "title": "overridden"}, base.Props)
}

func TestInject_PassThrough(t *testing.T) {
	model := core.Model{"title": "Hi"}

	text := Inject(Text("plain"), model, "/p", "/page")
	require.IsType(t, Opaque{}, text)
	assert.Equal(t, "plain", renderString(t, text.Component()))

	many := Inject(Nodes(templ.NopComponent, templ.NopComponent), model, "/p", "/page")
	require.IsType(t, Opaque{}, many)
	assert.Len(t, many.(Opaque).Nodes, 2)

	assert.Nil(t, Inject(nil, model, "/p", "/page"))

	// An element without a renderer is not clonable
	inert := Single{Element: Element{Name: "inert"}}
	assert.Equal(t, inert, Inject(inert, model, "/p", "/page"))
}

func TestDecode(t *testing.T) {
	type teaser struct {
		Title  string `prop:"title"`
		Path   string `prop:"cqPath"`
		Count  int    `prop:"count"`
		Hidden bool   `prop:"hidden"`
	}

	var got teaser
	err := Decode(map[string]any{
		"title":   "Hi",
		"cqPath":  "/content/p",
		"count":   float64(3), // JSON numbers decode as float64
		"hidden":  "true",
		"ignored": 1,
	}, &got)

	require.NoError(t, err)
	assert.Equal(t, teaser{Title: "Hi", Path: "/content/p", Count: 3, Hidden: true}, got)
}

func TestDecode_NotAPointer(t *testing.T) {
	var target struct{ Title string }
	assert.Error(t, Decode(map[string]any{"Title": "x"}, target))
}
