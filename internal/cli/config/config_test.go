package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "editable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func rootFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "config file")
	flags.String("content-dir", "", "content directory")
	flags.String("state", "", "state database")
	flags.String("remote-url", "", "remote content host")
	flags.BoolP("verbose", "v", false, "verbose")
	flags.StringP("output", "o", "", "output format")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	want := &Config{
		ContentDir:   filepath.Join(dir, DefaultContentDir),
		StatePath:    filepath.Join(dir, DefaultStateFile),
		OutputFormat: DefaultOutput,
		UI: UIConfig{
			Host:          DefaultHost,
			Port:          DefaultPort,
			AutoOpen:      true,
			Watch:         true,
			SessionSecret: DefaultSessionSecret,
			RenderTimeout: DefaultRenderTimeout,
		},
		Store: StoreConfig{
			FetchTimeout:  DefaultFetchTimeout,
			UpdateTimeout: DefaultUpdateTimeout,
		},
		ProjectRoot: dir,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `content_dir: site
state_path: /var/lib/editable/state.db
remote_url: https://author.example.com
output: json
ui:
  port: 9000
  watch: false
  render_timeout: 500ms
store:
  fetch_timeout: 1s
components:
  site/components/hero:
    kind: title
    empty_label: Hero
    required: [text]
    force_reload: true
    class_name: hero
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "site"), cfg.ContentDir)
	assert.Equal(t, "/var/lib/editable/state.db", cfg.StatePath)
	assert.Equal(t, "https://author.example.com", cfg.RemoteURL)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 9000, cfg.UI.Port)
	assert.False(t, cfg.UI.Watch)
	assert.Equal(t, 500*time.Millisecond, cfg.UI.RenderTimeout)
	assert.Equal(t, time.Second, cfg.Store.FetchTimeout)
	assert.Equal(t, DefaultUpdateTimeout, cfg.Store.UpdateTimeout)

	require.Contains(t, cfg.Components, "site/components/hero")
	assert.Equal(t, ComponentConfig{
		Kind:        "title",
		EmptyLabel:  "Hero",
		Required:    []string{"text"},
		ForceReload: true,
		ClassName:   "hero",
	}, cfg.Components["site/components/hero"])
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "remote_url: http://from-file\n")
	t.Setenv("EDITABLE_REMOTE_URL", "http://from-env")

	flags := rootFlags()
	require.NoError(t, flags.Set("remote-url", "http://from-flag"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag", cfg.RemoteURL, "flag value should override config file and env var")
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "remote_url: http://from-file\nui:\n  port: 9000\n")
	t.Setenv("EDITABLE_REMOTE_URL", "http://from-env")
	t.Setenv("EDITABLE_UI__PORT", "9100")

	cfg, err := LoadConfig(cfgPath, rootFlags())
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.RemoteURL)
	assert.Equal(t, 9100, cfg.UI.Port, "nested keys use a double underscore")
}

func TestLoadConfig_StateFlagMapsToStatePath(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "state_path: from_file.db\n")

	flags := rootFlags()
	require.NoError(t, flags.Set("state", ":memory:"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.StatePath)
}

func TestLoadConfig_ContentDirFlagAnchorsProjectRoot(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	contentDir := filepath.Join(dir, "content")
	require.NoError(t, os.MkdirAll(contentDir, 0750))
	writeConfig(t, dir, "state_path: state.db\n")

	flags := rootFlags()
	require.NoError(t, flags.Set("content-dir", contentDir))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, contentDir, cfg.ContentDir)
	assert.Equal(t, filepath.Join(dir, "state.db"), cfg.StatePath)
	assert.Equal(t, filepath.Join(dir, "editable.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"unknown output", "output: xml\n", "unknown output format"},
		{"port out of range", "ui:\n  port: 70000\n", "ui.port"},
		{"unknown kind", "components:\n  x/y:\n    kind: video\n", "unknown kind"},
		{"bad yaml", "ui: [\n", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			cfgPath := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadConfig(cfgPath, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{ContentDir: "content", StatePath: "state.db", OutputFormat: "text"}
	require.NoError(t, valid.Validate())

	noContent := valid
	noContent.ContentDir = ""
	assert.ErrorContains(t, noContent.Validate(), "content_dir is required")

	noState := valid
	noState.StatePath = ""
	assert.ErrorContains(t, noState.Validate(), "state_path is required")
}

func TestConfig_Registry(t *testing.T) {
	t.Run("defaults when none configured", func(t *testing.T) {
		reg := (&Config{}).Registry()
		assert.Equal(t, []string{
			"core/components/image",
			"core/components/text",
			"core/components/title",
		}, reg.ResourceTypes())

		cfg := reg.EditConfig("core/components/text")
		assert.Equal(t, "Text", cfg.EmptyLabel)
		assert.True(t, cfg.Empty(map[string]any{}))
		assert.False(t, cfg.Empty(map[string]any{"text": "hi"}))
	})

	t.Run("configured components replace defaults", func(t *testing.T) {
		reg := (&Config{Components: map[string]ComponentConfig{
			"site/hero": {Kind: "title", ForceReload: true},
		}}).Registry()
		assert.Equal(t, []string{"site/hero"}, reg.ResourceTypes())
		assert.True(t, reg.EditConfig("site/hero").ForceReload)
	})
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "falls back to a discard logger")

	logger := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
