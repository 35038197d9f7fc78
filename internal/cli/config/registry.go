package config

import "github.com/leapstack-labs/editable/internal/components"

// DefaultComponents is used when the config registers no components.
var DefaultComponents = map[string]ComponentConfig{
	"core/components/text":  {Kind: components.KindText, EmptyLabel: "Text", Required: []string{"text"}},
	"core/components/title": {Kind: components.KindTitle, EmptyLabel: "Title", Required: []string{"text"}},
	"core/components/image": {Kind: components.KindImage, EmptyLabel: "Image", Required: []string{"src"}},
}

// Registry builds the component registry from the configured components.
func (c *Config) Registry() *components.Registry {
	comps := c.Components
	if len(comps) == 0 {
		comps = DefaultComponents
	}
	reg := components.NewRegistry()
	for rt, comp := range comps {
		reg.Register(components.Definition{
			ResourceType: rt,
			Kind:         comp.Kind,
			EmptyLabel:   comp.EmptyLabel,
			Required:     comp.Required,
			ForceReload:  comp.ForceReload,
			ClassName:    comp.ClassName,
		})
	}
	return reg
}
