package editable

import (
	"fmt"
	"maps"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/editable/pkg/core"
)

// ComponentProps returns the props injected into children when a page path is
// known: the content path under core.PathProp, overlaid with the model.
// A model entry named core.PathProp replaces the synthesized path.
func ComponentProps(path string, model core.Model) map[string]any {
	props := make(map[string]any, len(model)+1)
	props[core.PathProp] = path
	maps.Copy(props, model)
	return props
}

// Inject merges the model into children.
//
// A Single child with a page path receives ComponentProps; without a page path
// it receives the raw model. Opaque and nil children are returned unchanged.
func Inject(children Content, model core.Model, path, pagePath string) Content {
	single, ok := children.(Single)
	if !ok || single.Element.Render == nil {
		return children
	}

	if pagePath != "" {
		return Single{Element: single.Element.With(ComponentProps(path, model))}
	}
	return Single{Element: single.Element.With(model)}
}

// Decode decodes injected props into target, a pointer to a struct.
// Fields are matched through their `prop` tags, falling back to field names.
func Decode(props map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "prop",
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to build prop decoder: %w", err)
	}
	if err := dec.Decode(props); err != nil {
		return fmt.Errorf("failed to decode props: %w", err)
	}
	return nil
}
