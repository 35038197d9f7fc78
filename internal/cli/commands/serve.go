package commands

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/editable/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
	Dev       bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the live content server",
		Long: `Start a local web server that renders content nodes and keeps them live.

Each open page holds a mounted node: model changes made through the API,
the CLI or the content directory are streamed to the browser as they happen.
Add ?wcmmode=edit to a page URL, or POST /editor/mode, to render with the
authoring markers.`,
		Example: `  # Start on the configured port
  editable serve

  # Start on a custom port without opening a browser
  editable serve --port 3000 --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch the content directory for changes")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Enable live reload of the UI")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	uiCfg := cc.Cfg.UI

	// CLI flags override config file
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}
	autoOpen := uiCfg.AutoOpen && !opts.NoBrowser
	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}
	dev := uiCfg.Dev || opts.Dev

	if _, err := os.Stat(cc.Cfg.ContentDir); os.IsNotExist(err) {
		cc.Logger.Warn("content directory does not exist, not watching", "dir", cc.Cfg.ContentDir)
		watch = false
	}

	server := ui.NewServer(ui.Config{
		Store:         cc.Store,
		DB:            cc.DB,
		Files:         cc.Files,
		Registry:      cc.Registry,
		Host:          uiCfg.Host,
		Port:          port,
		Watch:         watch,
		Dev:           dev,
		SessionSecret: uiCfg.SessionSecret,
		RenderTimeout: uiCfg.RenderTimeout,
		UpdateTimeout: cc.Cfg.Store.UpdateTimeout,
		Logger:        cc.Logger,
	})

	url := fmt.Sprintf("http://%s:%d", uiCfg.Host, port)
	if autoOpen {
		go openBrowser(url)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving content on %s\n", url)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
