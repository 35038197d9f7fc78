package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/editable/internal/editable"
	"github.com/leapstack-labs/editable/internal/editor"
	"github.com/leapstack-labs/editable/internal/modelstore"
	"github.com/leapstack-labs/editable/internal/pathutil"
	"github.com/leapstack-labs/editable/pkg/core"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Edit    bool
	Timeout time.Duration
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Render a content node to HTML",
		Long: `Render mounts the node at the given content path, waits for its model
and prints the resulting HTML. With --edit the output carries the authoring
markers and, for empty nodes, the placeholder.`,
		Example: `  # Render a page's text component
  editable render /content/site/en/jcr:content/root/text

  # Render with authoring markers
  editable render /content/site/en/jcr:content/root/text --edit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Edit, "edit", false, "Render in editor mode")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 5*time.Second, "How long to wait for the model")

	return cmd
}

func runRender(cmd *cobra.Command, arg string, opts *RenderOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	path := contentPath(arg)
	model, err := cc.Store.GetData(ctx, path, false)
	if errors.Is(err, modelstore.ErrNotFound) {
		return fmt.Errorf("no model at %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	updater := editor.NewUpdater(editor.UpdaterConfig{
		Store:   cc.Store,
		Timeout: cc.Cfg.Store.UpdateTimeout,
		Logger:  cc.Logger,
	})
	defer updater.Close()

	page, item := pathutil.SplitItemPath(path)
	props := cc.Registry.Props(model.String(core.TypeKey), page, item)

	inst := editable.NewInstance(editable.Deps{
		Store:    cc.Store,
		Updater:  updater,
		Detector: editor.Static(opts.Edit),
		Logger:   cc.Logger,
	})
	defer inst.Unmount()

	if err := inst.Mount(ctx, props); err != nil {
		return err
	}

	// An empty model is never delivered; there is nothing to wait for
	if !model.IsEmpty() {
		waitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
		if err := inst.AwaitModel(waitCtx); err != nil {
			return fmt.Errorf("model for %s did not arrive: %w", path, err)
		}
	}

	view, err := inst.View(ctx)
	if err != nil {
		return err
	}
	if err := view.Render(ctx, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
