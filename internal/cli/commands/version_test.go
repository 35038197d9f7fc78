package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/editable/internal/cli/config"
)

func runVersion(t *testing.T, ctx context.Context, info BuildInfo) string {
	t.Helper()
	cmd := NewVersionCommand(info)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(ctx))
	return buf.String()
}

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		info    BuildInfo
		wantOut []string
		notOut  []string
	}{
		{
			name:    "version only",
			info:    BuildInfo{Version: "0.1.0", Commit: "unknown", BuildDate: "unknown"},
			wantOut: []string{"editable v0.1.0", "templ"},
			notOut:  []string{"commit"},
		},
		{
			name:    "release build",
			info:    BuildInfo{Version: "1.2.3", Commit: "abc1234", BuildDate: "2026-01-02"},
			wantOut: []string{"editable v1.2.3", "commit abc1234, built 2026-01-02"},
		},
		{
			name:    "commit without date",
			info:    BuildInfo{Version: "dev", Commit: "abc1234"},
			wantOut: []string{"editable vdev", "commit abc1234, built unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runVersion(t, context.Background(), tt.info)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notOut {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestVersionCommand_StructuredOutput(t *testing.T) {
	info := BuildInfo{Version: "1.2.3", Commit: "abc1234", BuildDate: "2026-01-02"}

	t.Run("json", func(t *testing.T) {
		ctx := config.WithConfig(context.Background(), &config.Config{OutputFormat: "json"})
		var got BuildInfo
		require.NoError(t, json.Unmarshal([]byte(runVersion(t, ctx, info)), &got))
		assert.Equal(t, info, got)
	})

	t.Run("yaml", func(t *testing.T) {
		ctx := config.WithConfig(context.Background(), &config.Config{OutputFormat: "yaml"})
		var got BuildInfo
		require.NoError(t, yaml.Unmarshal([]byte(runVersion(t, ctx, info)), &got))
		assert.Equal(t, info, got)
	})

	t.Run("text config keeps the plain output", func(t *testing.T) {
		ctx := config.WithConfig(context.Background(), &config.Config{OutputFormat: "text"})
		assert.Contains(t, runVersion(t, ctx, info), "editable v1.2.3")
	})
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand(BuildInfo{Version: "test"})

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
