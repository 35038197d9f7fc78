package editable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/editable/pkg/core"
)

func TestRender_NilProps(t *testing.T) {
	assert.Empty(t, renderString(t, Render(nil, "/content/p", core.Model{"title": "Hi"}, true)))
}

func TestRender(t *testing.T) {
	const itemPath = "/content/page/jcr:content/root/title"

	tests := []struct {
		name       string
		props      *Props
		path       string
		model      core.Model
		isInEditor bool
		want       string
	}{
		{
			name:  "no wrapper outside the editor without classes",
			props: &Props{Children: Single{Element: propsElement()}},
			path:  "/content/p",
			model: core.Model{"title": "Hi"},
			want:  `<span>title=Hi</span>`,
		},
		{
			name: "editor wrapper with markers and empty placeholder",
			props: &Props{
				Config:   textConfig(),
				Children: Single{Element: propsElement()},
				PagePath: "/content/page",
			},
			path:       itemPath,
			model:      core.Model{"title": "Hi"},
			isInEditor: true,
			want: `<div data-cq-data-path="` + itemPath + `" data-cq-resource-type="site/components/text">` +
				`<span>cqPath=` + itemPath + `;title=Hi</span>` +
				`<div class="new section cq-placeholder" data-emptytext="text"></div></div>`,
		},
		{
			name: "editor placeholder without empty marker",
			props: &Props{
				Config:   textConfig(),
				Children: Text("body"),
			},
			path:       "/content/p",
			model:      core.Model{"text": "Hello"},
			isInEditor: true,
			want: `<div data-cq-data-path="/content/p" data-cq-resource-type="site/components/text">body` +
				`<div class="new section" data-emptytext="text"></div></div>`,
		},
		{
			name: "class names from props, container and model",
			props: &Props{
				Children:             Text("body"),
				ClassName:            "a",
				ContainerProps:       ContainerProps{ClassName: "b"},
				AppliedCSSClassNames: "ignored",
			},
			path:  "/content/p",
			model: core.Model{core.AppliedCSSClassNamesKey: "c"},
			want:  `<div class="a b c">body</div>`,
		},
		{
			name: "applied classes fall back to props",
			props: &Props{
				Children:             Text("body"),
				AppliedCSSClassNames: "styled",
			},
			path: "/content/p",
			want: `<div class="styled">body</div>`,
		},
		{
			name: "removed default styles drop the wrapper",
			props: &Props{
				Children:            Text("body"),
				ClassName:           "a",
				RemoveDefaultStyles: true,
			},
			path: "/content/p",
			want: `body`,
		},
		{
			name: "mapped props reach the placeholder predicate",
			props: &Props{
				Config:   textConfig(),
				Children: Text("body"),
				Mapped:   map[string]any{"text": "from mapped"},
			},
			path:       "/content/p",
			isInEditor: true,
			want: `<div data-cq-data-path="/content/p" data-cq-resource-type="site/components/text">body` +
				`<div class="new section" data-emptytext="text"></div></div>`,
		},
		{
			name: "class names are escaped",
			props: &Props{
				Children:  Text("<b>"),
				ClassName: `x" onclick="y`,
			},
			path: "/content/p",
			want: `<div class="x&#34; onclick=&#34;y">&lt;b&gt;</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderString(t, Render(tt.props, tt.path, tt.model, tt.isInEditor))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_DefaultConfigPlaceholder(t *testing.T) {
	got := renderString(t, Render(&Props{}, "/content/p", nil, true))
	assert.Equal(t,
		`<div data-cq-data-path="/content/p" data-cq-resource-type="">`+
			`<div class="new section" data-emptytext=""></div></div>`,
		got)
}

func TestProps_DefaultConfigIsNotShared(t *testing.T) {
	first := (&Props{}).EditConfig()
	first.ResourceType = "site/components/changed"
	first.IsEmpty = func(map[string]any) bool { return true }

	second := (&Props{}).EditConfig()
	assert.Empty(t, second.ResourceType)
	assert.False(t, second.Empty(map[string]any{}))
}

func TestPlaceholder_EmptyLabel(t *testing.T) {
	cfg := &core.EditConfig{ResourceType: "site/components/teaser", EmptyLabel: "Drag a teaser"}
	assert.Equal(t, `<div class="new section" data-emptytext="Drag a teaser"></div>`,
		renderString(t, Placeholder(cfg, nil)))

	cfg.EmptyLabel = ""
	assert.Equal(t, `<div class="new section" data-emptytext="teaser"></div>`,
		renderString(t, Placeholder(cfg, nil)))
}
