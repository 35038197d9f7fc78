package editable

import (
	"context"
	"io"
	"maps"

	"github.com/a-h/templ"
)

// ElementProps are the props an Element renders with.
type ElementProps map[string]any

// Element is a single renderable child that accepts extra props.
type Element struct {
	// Name identifies the element, typically its resource type.
	Name   string
	Props  ElementProps
	Render func(ElementProps) templ.Component
}

// With returns a copy of e whose props are e.Props overlaid with extra.
func (e Element) With(extra map[string]any) Element {
	merged := make(ElementProps, len(e.Props)+len(extra))
	maps.Copy(merged, e.Props)
	maps.Copy(merged, extra)
	e.Props = merged
	return e
}

// Component renders the element with its current props.
func (e Element) Component() templ.Component {
	if e.Render == nil {
		return templ.NopComponent
	}
	return e.Render(e.Props)
}

// Content is the child content of a node: either Single or Opaque.
type Content interface {
	Component() templ.Component
	isContent()
}

// Single is one element that supports prop injection.
type Single struct {
	Element Element
}

// Opaque is child content that is rendered as-is.
type Opaque struct {
	Nodes []templ.Component
}

func (Single) isContent() {}
func (Opaque) isContent() {}

// Component implements Content.
func (s Single) Component() templ.Component {
	return s.Element.Component()
}

// Component implements Content.
func (o Opaque) Component() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, n := range o.Nodes {
			if n == nil {
				continue
			}
			if err := n.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Text returns opaque content rendering s as escaped text.
func Text(s string) Opaque {
	return Opaque{Nodes: []templ.Component{
		templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, templ.EscapeString(s))
			return err
		}),
	}}
}

// Nodes returns opaque content made of the given components.
func Nodes(nodes ...templ.Component) Opaque {
	return Opaque{Nodes: nodes}
}

// contentComponent renders c, treating nil as empty.
func contentComponent(c Content) templ.Component {
	if c == nil {
		return templ.NopComponent
	}
	return c.Component()
}
