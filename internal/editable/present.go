package editable

import (
	"strings"

	"github.com/leapstack-labs/editable/pkg/core"
)

// ClassNames joins class name segments with single spaces, trimming each
// segment and skipping empty ones.
func ClassNames(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// Attr is an HTML attribute.
type Attr struct {
	Name  string
	Value string
}

// PresentationInput holds what the wrapping decision depends on.
type PresentationInput struct {
	IsInEditor          bool
	RemoveDefaultStyles bool
	ClassName           string
	Path                string
	ResourceType        string
}

// Presentation describes how a node's content is emitted.
type Presentation struct {
	// Wrap places the content inside a container div.
	Wrap      bool
	ClassName string
	// Attributes are the editor markers of the container.
	Attributes []Attr
	// Placeholder renders the editor placeholder after the content.
	Placeholder bool
}

// Decide computes the presentation of a node.
//
// Content is wrapped in editor mode, or when default styles are kept and the
// class name is non-empty. Editor markers and the placeholder are only emitted
// when wrapping in editor mode.
func Decide(in PresentationInput) Presentation {
	wrap := in.IsInEditor || (!in.RemoveDefaultStyles && in.ClassName != "")
	if !wrap {
		return Presentation{}
	}

	p := Presentation{Wrap: true, ClassName: in.ClassName}
	if in.IsInEditor {
		p.Attributes = []Attr{
			{Name: core.DataPathAttr, Value: in.Path},
			{Name: core.DataResourceTypeAttr, Value: in.ResourceType},
		}
		p.Placeholder = true
	}
	return p
}

// editor reports whether the container carries the editor markers.
func (p Presentation) editor() bool {
	return len(p.Attributes) > 0
}

// attr returns the value of the editor marker name.
func (p Presentation) attr(name string) string {
	for _, a := range p.Attributes {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}
