package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/state"
	"github.com/leapstack-labs/editable/pkg/core"
)

// NewModelCommand creates the model command and its subcommands.
func NewModelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect and update content models",
		Long: `Read, write and list the models held by the state database and the
content directory.`,
	}

	cmd.AddCommand(newModelGetCommand())
	cmd.AddCommand(newModelSetCommand())
	cmd.AddCommand(newModelDeleteCommand())
	cmd.AddCommand(newModelListCommand())
	return cmd
}

func newModelGetCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Print the model at a content path",
		Example: `  editable model get /content/site/en/jcr:content/root/text
  editable model get /content/site/en -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			path := contentPath(args[0])
			model, err := cc.Store.GetData(cmd.Context(), path, force)
			if errors.Is(err, modelstore.ErrNotFound) {
				return fmt.Errorf("no model at %s", path)
			}
			if err != nil {
				return err
			}
			return writeModel(cmd.OutOrStdout(), cc.Cfg.OutputFormat, model)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Bypass the cache")
	return cmd
}

func newModelSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> [file]",
		Short: "Store a model at a content path",
		Long: `Set stores the JSON model read from file, or from stdin when file is
omitted or "-", in the state database.`,
		Example: `  editable model set /content/site/en/jcr:content/root/text text.json
  echo '{"text":"Hello"}' | editable model set /content/site/en/jcr:content/root/text`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var data []byte
			if len(args) == 2 && args[1] != "-" {
				data, err = os.ReadFile(args[1])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read model: %w", err)
			}

			model, err := modelstore.DecodeModel(data)
			if err != nil {
				return err
			}

			path := contentPath(args[0])
			if err := cc.Store.SetData(cmd.Context(), path, model); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}
}

func newModelDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>",
		Short: "Remove a persisted model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			path := contentPath(args[0])
			if err := cc.DB.DeleteModel(cmd.Context(), path); err != nil {
				if errors.Is(err, state.ErrNotFound) {
					return fmt.Errorf("no persisted model at %s", path)
				}
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", path)
			return nil
		},
	}
}

// ModelEntry is one row of the model listing.
type ModelEntry struct {
	Path      string     `json:"path" yaml:"path"`
	Persisted bool       `json:"persisted" yaml:"persisted"`
	File      bool       `json:"file" yaml:"file"`
	Size      int        `json:"size,omitempty" yaml:"size,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

func newModelListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted and file models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := listModels(cmd, cc)
			if err != nil {
				return err
			}
			return writeEntries(cmd.OutOrStdout(), cc.Cfg.OutputFormat, entries)
		},
	}
}

func listModels(cmd *cobra.Command, cc *CommandContext) ([]ModelEntry, error) {
	byPath := make(map[string]*ModelEntry)
	entry := func(path string) *ModelEntry {
		e, ok := byPath[path]
		if !ok {
			e = &ModelEntry{Path: path}
			byPath[path] = e
		}
		return e
	}

	infos, err := cc.DB.ListModels(cmd.Context())
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		e := entry(info.Path)
		e.Persisted = true
		e.Size = info.Size
		updated := info.UpdatedAt
		e.UpdatedAt = &updated
	}

	paths, err := cc.Files.List()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		entry(p).File = true
	}

	entries := make([]ModelEntry, 0, len(byPath))
	for _, e := range byPath {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func writeModel(w io.Writer, format string, model core.Model) error {
	switch format {
	case "json":
		return writeJSON(w, model)
	case "yaml":
		return writeYAML(w, model)
	}

	keys := make([]string, 0, len(model))
	for k := range model {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Value"})
	for _, k := range keys {
		t.AppendRow(table.Row{k, formatValue(model[k])})
	}
	t.Render()
	return nil
}

func writeEntries(w io.Writer, format string, entries []ModelEntry) error {
	switch format {
	case "json":
		return writeJSON(w, entries)
	case "yaml":
		return writeYAML(w, entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No models found")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Path", "Persisted", "File", "Size", "Updated"})
	for _, e := range entries {
		updated := ""
		if e.UpdatedAt != nil {
			updated = e.UpdatedAt.Format(time.DateTime)
		}
		size := ""
		if e.Persisted {
			size = fmt.Sprintf("%d", e.Size)
		}
		t.AppendRow(table.Row{e.Path, yesNo(e.Persisted), yesNo(e.File), size, updated})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d models", len(entries))})
	t.Render()
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// formatValue prints scalars as-is and nested values as compact JSON.
func formatValue(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
