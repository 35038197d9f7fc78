package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/editable/internal/cli/config"
)

// BuildInfo identifies a build of the binary.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	BuildDate string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display editable version and build information. With --output json or
yaml the information is printed in that format.`,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			if cfg := config.GetConfig(cmd.Context()); cfg != nil {
				switch cfg.OutputFormat {
				case "json":
					_ = writeJSON(w, info)
					return
				case "yaml":
					_ = writeYAML(w, info)
					return
				}
			}

			_, _ = fmt.Fprintf(w, "editable v%s\n", info.Version)
			if known(info.Commit) || known(info.BuildDate) {
				_, _ = fmt.Fprintf(w, "commit %s, built %s\n", orUnknown(info.Commit), orUnknown(info.BuildDate))
			}
			_, _ = fmt.Fprintln(w, "Model-bound content renderer built with Go and templ")
		},
	}
}

func known(s string) bool {
	return s != "" && s != "unknown"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
