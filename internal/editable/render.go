package editable

import (
	"github.com/a-h/templ"
	"github.com/leapstack-labs/editable/pkg/core"
)

// Render builds the output of a node for an already-resolved path, model and
// authoring mode. nil props render nothing.
func Render(props *Props, path string, model core.Model, isInEditor bool) templ.Component {
	if props == nil {
		return templ.NopComponent
	}
	model = core.OrEmpty(model)
	cfg := props.EditConfig()

	body := contentComponent(Inject(props.Children, model, path, props.PagePath))

	pres := Decide(PresentationInput{
		IsInEditor:          isInEditor,
		RemoveDefaultStyles: props.RemoveDefaultStyles,
		ClassName:           ClassNames(props.ClassName, props.ContainerProps.ClassName, props.appliedClassNames(model)),
		Path:                path,
		ResourceType:        cfg.ResourceType,
	})
	if !pres.Wrap {
		return body
	}

	var placeholder templ.Component
	if pres.Placeholder {
		placeholder = Placeholder(cfg, placeholderProps(props.Mapped, ComponentProps(path, model)))
	}
	return container(pres, body, placeholder)
}
