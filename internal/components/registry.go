// Package components maps resource types to their edit configs and renderers.
package components

import (
	"sort"

	"github.com/leapstack-labs/editable/internal/editable"
	"github.com/leapstack-labs/editable/pkg/core"
)

// Definition describes one registered component.
type Definition struct {
	ResourceType string
	// Kind selects the built-in renderer. Unknown kinds render generically.
	Kind       string
	EmptyLabel string
	// Required lists the model keys whose absence marks the node empty.
	Required    []string
	ForceReload bool
	ClassName   string
}

// Registry holds component definitions by resource type.
// It is built once at startup and read concurrently afterwards.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry creates a registry from defs.
func NewRegistry(defs ...Definition) *Registry {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		r.Register(d)
	}
	return r
}

// Register adds or replaces a definition. Not safe for concurrent use.
func (r *Registry) Register(def Definition) {
	r.defs[def.ResourceType] = def
}

// Lookup returns the definition for resourceType.
func (r *Registry) Lookup(resourceType string) (Definition, bool) {
	def, ok := r.defs[resourceType]
	return def, ok
}

// ResourceTypes returns the registered resource types in sorted order.
func (r *Registry) ResourceTypes() []string {
	types := make([]string, 0, len(r.defs))
	for rt := range r.defs {
		types = append(types, rt)
	}
	sort.Strings(types)
	return types
}

// EditConfig returns the edit config for resourceType. Unregistered types get
// a config that only carries the resource type.
func (r *Registry) EditConfig(resourceType string) *core.EditConfig {
	def, ok := r.Lookup(resourceType)
	if !ok {
		return &core.EditConfig{ResourceType: resourceType}
	}

	cfg := &core.EditConfig{
		ResourceType: resourceType,
		ForceReload:  def.ForceReload,
		EmptyLabel:   def.EmptyLabel,
	}
	if len(def.Required) > 0 {
		required := append([]string(nil), def.Required...)
		cfg.IsEmpty = func(props map[string]any) bool {
			return missingAny(props, required)
		}
	}
	return cfg
}

// Element returns the child renderer for resourceType.
func (r *Registry) Element(resourceType string) editable.Element {
	def, _ := r.Lookup(resourceType)
	return editable.Element{Name: resourceType, Render: renderer(def.Kind)}
}

// Props returns node props for a component of resourceType at the given
// page and item path.
func (r *Registry) Props(resourceType, pagePath, itemPath string) *editable.Props {
	def, _ := r.Lookup(resourceType)
	return &editable.Props{
		Config:    r.EditConfig(resourceType),
		Children:  editable.Single{Element: r.Element(resourceType)},
		ClassName: def.ClassName,
		PagePath:  pagePath,
		ItemPath:  itemPath,
	}
}

// missingAny reports whether any key is absent, nil or an empty string.
func missingAny(props map[string]any, keys []string) bool {
	for _, k := range keys {
		v, ok := props[k]
		if !ok || v == nil {
			return true
		}
		if s, isString := v.(string); isString && s == "" {
			return true
		}
	}
	return false
}
