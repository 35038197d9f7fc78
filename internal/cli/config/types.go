// Package config provides configuration management for the editable CLI.
package config

import "time"

// UIConfig holds configuration for the content server.
type UIConfig struct {
	Host          string        `koanf:"host"`
	Port          int           `koanf:"port"`
	AutoOpen      bool          `koanf:"auto_open"`
	Watch         bool          `koanf:"watch"`
	Dev           bool          `koanf:"dev"`
	SessionSecret string        `koanf:"session_secret"`
	RenderTimeout time.Duration `koanf:"render_timeout"`
}

// StoreConfig holds model store timeouts.
type StoreConfig struct {
	// FetchTimeout bounds a single request to the remote content host.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
	// UpdateTimeout bounds a background model refresh.
	UpdateTimeout time.Duration `koanf:"update_timeout"`
}

// ComponentConfig registers a resource type.
type ComponentConfig struct {
	Kind        string   `koanf:"kind"`
	EmptyLabel  string   `koanf:"empty_label"`
	Required    []string `koanf:"required"`
	ForceReload bool     `koanf:"force_reload"`
	ClassName   string   `koanf:"class_name"`
}

// Config holds all CLI configuration options.
type Config struct {
	ContentDir   string                     `koanf:"content_dir"`
	StatePath    string                     `koanf:"state_path"`
	RemoteURL    string                     `koanf:"remote_url"`
	Verbose      bool                       `koanf:"verbose"`
	OutputFormat string                     `koanf:"output"`
	UI           UIConfig                   `koanf:"ui"`
	Store        StoreConfig                `koanf:"store"`
	Components   map[string]ComponentConfig `koanf:"components"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultContentDir    = "content"
	DefaultStateFile     = ".editable/state.db"
	DefaultOutput        = "text"
	DefaultHost          = "localhost"
	DefaultPort          = 8765
	DefaultSessionSecret = "editable-dev-secret-change-in-production" //nolint:gosec
	DefaultRenderTimeout = 2 * time.Second
	DefaultFetchTimeout  = 5 * time.Second
	DefaultUpdateTimeout = 10 * time.Second
)

// Output formats accepted by --output.
var OutputFormats = []string{"text", "json", "yaml"}
