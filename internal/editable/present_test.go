package editable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/editable/pkg/core"
)

func TestClassNames(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"all empty", []string{"", "", ""}, ""},
		{"single", []string{"a", "", ""}, "a"},
		{"middle empty keeps one space", []string{"a", "", "c"}, "a c"},
		{"all set", []string{"a", "b", "c"}, "a b c"},
		{"segments are trimmed", []string{"  a ", " b", "c  "}, "a b c"},
		{"whitespace-only segment skipped", []string{"a", "   ", "c"}, "a c"},
		{"no parts", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassNames(tt.parts...))
		})
	}
}

func TestClassNames_IdempotentUnderEmptyInputs(t *testing.T) {
	once := ClassNames("a", "b")
	assert.Equal(t, once, ClassNames("", "a", "", "b", ""))
	assert.Equal(t, once, ClassNames(once, "", ""))
}

func TestDecide_WrapTruthTable(t *testing.T) {
	tests := []struct {
		name                string
		isInEditor          bool
		removeDefaultStyles bool
		className           string
		wantWrap            bool
	}{
		{"editor, keep styles, class", true, false, "c", true},
		{"editor, keep styles, no class", true, false, "", true},
		{"editor, remove styles, class", true, true, "c", true},
		{"editor, remove styles, no class", true, true, "", true},
		{"no editor, keep styles, class", false, false, "c", true},
		{"no editor, keep styles, no class", false, false, "", false},
		{"no editor, remove styles, class", false, true, "c", false},
		{"no editor, remove styles, no class", false, true, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Decide(PresentationInput{
				IsInEditor:          tt.isInEditor,
				RemoveDefaultStyles: tt.removeDefaultStyles,
				ClassName:           tt.className,
				Path:                "/content/p",
				ResourceType:        "site/text",
			})

			assert.Equal(t, tt.wantWrap, p.Wrap)

			editorMarks := tt.isInEditor && tt.wantWrap
			assert.Equal(t, editorMarks, p.Placeholder)
			if editorMarks {
				assert.Equal(t, []Attr{
					{Name: core.DataPathAttr, Value: "/content/p"},
					{Name: core.DataResourceTypeAttr, Value: "site/text"},
				}, p.Attributes)
			} else {
				assert.Empty(t, p.Attributes)
			}
		})
	}
}

func TestDecide_NoWrapCarriesNothing(t *testing.T) {
	p := Decide(PresentationInput{ClassName: "", Path: "/content/p"})
	assert.Equal(t, Presentation{}, p)
}
