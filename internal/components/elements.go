package components

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/editable/internal/editable"
	"github.com/leapstack-labs/editable/pkg/core"
)

// Built-in renderer kinds.
const (
	KindText    = "text"
	KindTitle   = "title"
	KindImage   = "image"
	KindGeneric = "generic"
)

type textProps struct {
	Text     string `prop:"text"`
	RichText bool   `prop:"richText"`
}

type titleProps struct {
	Text string `prop:"text"`
	// Type is the heading element, "h1" to "h6".
	Type string `prop:"type"`
}

type imageProps struct {
	Src string `prop:"src"`
	Alt string `prop:"alt"`
}

func renderer(kind string) func(editable.ElementProps) templ.Component {
	switch kind {
	case KindText:
		return renderText
	case KindTitle:
		return renderTitle
	case KindImage:
		return renderImage
	default:
		return renderGeneric
	}
}

// decoded decodes p into a T and renders it with view. A decode error is
// returned when the component renders.
func decoded[T any](p editable.ElementProps, view func(T) templ.Component) templ.Component {
	var props T
	if err := editable.Decode(p, &props); err != nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return fmt.Errorf("failed to decode component props: %w", err)
		})
	}
	return view(props)
}

func renderText(p editable.ElementProps) templ.Component {
	return decoded(p, textElement)
}

func renderTitle(p editable.ElementProps) templ.Component {
	return decoded(p, titleElement)
}

func renderImage(p editable.ElementProps) templ.Component {
	return decoded(p, imageElement)
}

// genericEntry is one key and its printed value.
type genericEntry struct {
	Key   string
	Value string
}

// renderGeneric lists the props as a definition list. Keys starting with ':'
// and the injected path are skipped.
func renderGeneric(p editable.ElementProps) templ.Component {
	keys := make([]string, 0, len(p))
	for k := range p {
		if strings.HasPrefix(k, ":") || k == core.PathProp {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]genericEntry, len(keys))
	for i, k := range keys {
		entries[i] = genericEntry{Key: k, Value: fmt.Sprint(p[k])}
	}
	return genericElement(entries)
}

func headingTag(t string) string {
	switch t {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return t
	default:
		return "h2"
	}
}
