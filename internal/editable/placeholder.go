package editable

import (
	"maps"
	"strings"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/editable/pkg/core"
)

// Placeholder CSS classes understood by the authoring tool.
const (
	placeholderClass      = "new section"
	emptyPlaceholderClass = "cq-placeholder"
)

// Placeholder renders the editor-only drop zone of a node. The empty marker
// class is set when cfg reports the node empty for props.
func Placeholder(cfg *core.EditConfig, props map[string]any) templ.Component {
	return placeholder(cfg.Empty(props), emptyLabel(cfg))
}

// emptyLabel returns the placeholder text: the configured label, else the
// last segment of the resource type.
func emptyLabel(cfg *core.EditConfig) string {
	if cfg == nil {
		return ""
	}
	if cfg.EmptyLabel != "" {
		return cfg.EmptyLabel
	}
	rt := cfg.ResourceType
	if i := strings.LastIndex(rt, "/"); i >= 0 {
		rt = rt[i+1:]
	}
	return rt
}

// placeholderProps layers the component props over the mapped props.
func placeholderProps(mapped map[string]any, componentProps map[string]any) map[string]any {
	props := make(map[string]any, len(mapped)+len(componentProps))
	maps.Copy(props, mapped)
	maps.Copy(props, componentProps)
	return props
}
