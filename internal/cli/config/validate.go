package config

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/editable/internal/components"
)

var componentKinds = []string{
	"",
	components.KindText,
	components.KindTitle,
	components.KindImage,
	components.KindGeneric,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("unknown output format %q (want one of %v)", c.OutputFormat, OutputFormats)
	}
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port out of range: %d", c.UI.Port)
	}
	for rt, comp := range c.Components {
		if !slices.Contains(componentKinds, comp.Kind) {
			return fmt.Errorf("component %s: unknown kind %q", rt, comp.Kind)
		}
	}
	return nil
}
