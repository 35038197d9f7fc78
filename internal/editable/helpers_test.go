package editable

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/editable/pkg/core"
)

// renderString renders c into a string.
func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

// propsElement renders its props as sorted key=value pairs inside a span.
func propsElement() Element {
	return Element{
		Name: "test/props",
		Render: func(p ElementProps) templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				keys := make([]string, 0, len(p))
				for k := range p {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				pairs := make([]string, 0, len(keys))
				for _, k := range keys {
					pairs = append(pairs, fmt.Sprintf("%s=%v", k, p[k]))
				}
				_, err := io.WriteString(w, "<span>"+templ.EscapeString(strings.Join(pairs, ";"))+"</span>")
				return err
			})
		},
	}
}

func textConfig() *core.EditConfig {
	return &core.EditConfig{
		ResourceType: "site/components/text",
		IsEmpty: func(props map[string]any) bool {
			text, _ := props["text"].(string)
			return text == ""
		},
	}
}
