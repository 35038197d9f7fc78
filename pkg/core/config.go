package core

// Editor data attributes emitted on wrapped output in editor mode.
const (
	DataPathAttr         = "data-cq-data-path"
	DataResourceTypeAttr = "data-cq-resource-type"
)

// EditConfig describes how a content node is edited in the authoring tool.
type EditConfig struct {
	// ResourceType identifies the component implementation, e.g. "site/components/text".
	ResourceType string
	// ForceReload bypasses the model store cache on refresh.
	ForceReload bool
	// EmptyLabel is shown by the placeholder when the node is empty.
	EmptyLabel string
	// IsEmpty reports whether the node has no authored content for the given props.
	// A nil predicate never reports empty.
	IsEmpty func(props map[string]any) bool
}

// defaultEditConfig is the config of every node that was not given one.
// It is built once and only handed out by value.
var defaultEditConfig = EditConfig{
	IsEmpty: func(map[string]any) bool { return false },
}

// DefaultConfig returns the default edit config. The result is a copy;
// changing it does not affect other nodes.
func DefaultConfig() EditConfig {
	return defaultEditConfig
}

// Empty evaluates the IsEmpty predicate.
func (c *EditConfig) Empty(props map[string]any) bool {
	if c == nil || c.IsEmpty == nil {
		return false
	}
	return c.IsEmpty(props)
}
