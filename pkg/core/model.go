package core

import (
	"fmt"
	"maps"
	"sort"
)

// Well-known model keys.
const (
	// TypeKey holds the resource type of the component the model belongs to.
	TypeKey = ":type"
	// AppliedCSSClassNamesKey holds style-system classes chosen by the author.
	AppliedCSSClassNamesKey = "appliedCssClassNames"
	// PathProp is the prop key under which the content path is injected into children.
	PathProp = "cqPath"
)

// Model is the key/value content data for a content path at a point in time.
// A missing model is represented by an empty Model, never by nil.
type Model map[string]any

// IsEmpty reports whether the model has no entries.
func (m Model) IsEmpty() bool {
	return len(m) == 0
}

// Clone returns a shallow copy of the model. A nil model clones to an empty one.
func (m Model) Clone() Model {
	out := make(Model, len(m))
	maps.Copy(out, m)
	return out
}

// String returns the value stored at key formatted as a string.
// Missing keys and nil values yield "".
func (m Model) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Keys returns the model keys in sorted order.
func (m Model) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// OrEmpty returns m, or an empty model when m is nil.
func OrEmpty(m Model) Model {
	if m == nil {
		return Model{}
	}
	return m
}
