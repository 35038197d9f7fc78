package editable

import "github.com/leapstack-labs/editable/pkg/core"

// ContainerProps configures the wrapping container.
type ContainerProps struct {
	ClassName string
}

// Props is the caller-supplied description of a node. Every field is optional.
type Props struct {
	// Config describes how the node is edited. nil uses core.DefaultConfig().
	Config   *core.EditConfig
	Children Content

	ClassName string
	// AppliedCSSClassNames is used when the model carries no appliedCssClassNames.
	AppliedCSSClassNames string
	ContainerProps       ContainerProps

	// Model seeds the node before the store delivers anything.
	Model core.Model

	PagePath string
	ItemPath string
	CQPath   string

	RemoveDefaultStyles bool
	// IsInEditor overrides the detected authoring mode when set.
	IsInEditor *bool

	// Mapped holds additional component properties. They are visible to the
	// placeholder's IsEmpty predicate beneath the injected model.
	Mapped map[string]any
}

// Bool returns a pointer to v, for Props.IsInEditor.
func Bool(v bool) *bool {
	return &v
}

// EditConfig returns the node's edit config, falling back to a copy of the
// default.
func (p *Props) EditConfig() *core.EditConfig {
	if p == nil || p.Config == nil {
		cfg := core.DefaultConfig()
		return &cfg
	}
	return p.Config
}

// InEditor resolves the authoring mode: an explicit override wins over detect.
func (p *Props) InEditor(detect func() bool) bool {
	if p.IsInEditor != nil {
		return *p.IsInEditor
	}
	if detect != nil {
		return detect()
	}
	return false
}

// Path returns the node's resolved content path.
func (p *Props) Path() string {
	return ResolvePath(p.CQPath, p.PagePath, p.ItemPath)
}

// appliedClassNames returns the style-system classes for the node.
func (p *Props) appliedClassNames(model core.Model) string {
	if _, ok := model[core.AppliedCSSClassNamesKey]; ok {
		return model.String(core.AppliedCSSClassNamesKey)
	}
	return p.AppliedCSSClassNames
}
