package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigFromPath_Grafana(t *testing.T) {
	path := writeConfig(t, `
source: grafana
grafana:
  url: https://grafana.example.com
  api_key: secret
  org_id: 2
  timeout: 5s
ui:
  theme: light
  refresh_interval: 1m
  initial_state: alerting
`)

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, SourceGrafana, cfg.Source)
	assert.Equal(t, "https://grafana.example.com", cfg.Grafana.URL)
	assert.Equal(t, "secret", cfg.Grafana.APIKey)
	assert.Equal(t, int64(2), cfg.Grafana.OrgID)
	assert.Equal(t, 5*time.Second, cfg.Grafana.Timeout)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, time.Minute, cfg.UI.RefreshInterval)
	assert.Equal(t, "alerting", cfg.UI.InitialState)
}

func TestLoadConfigFromPath_Defaults(t *testing.T) {
	path := writeConfig(t, "debug: true\n")

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, SourceSQLite, cfg.Source)
	assert.True(t, strings.HasSuffix(cfg.Storage.Path, "ruledeck.db"))
	assert.Equal(t, 720*time.Hour, cfg.Storage.Retention)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 30*time.Second, cfg.UI.RefreshInterval)
	assert.Equal(t, "all", cfg.UI.InitialState)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigFromPath_EnvOverride(t *testing.T) {
	path := writeConfig(t, "source: sqlite\n")
	t.Setenv("RULEDECK_UI_THEME", "light")

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		return Config{
			Source:  SourceGrafana,
			Grafana: GrafanaConfig{URL: "http://localhost:3000", Timeout: time.Second},
			UI:      UIConfig{Theme: "dark", RefreshInterval: 30 * time.Second, InitialState: "all"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown source", func(c *Config) { c.Source = "prometheus" }, "source must be one of"},
		{"missing url", func(c *Config) { c.Grafana.URL = "" }, "grafana.url cannot be empty"},
		{"bad scheme", func(c *Config) { c.Grafana.URL = "grafana:3000" }, "must start with http"},
		{"zero timeout", func(c *Config) { c.Grafana.Timeout = 0 }, "grafana.timeout"},
		{"sqlite without path", func(c *Config) { c.Source = SourceSQLite }, "storage.path"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"refresh too fast", func(c *Config) { c.UI.RefreshInterval = 10 * time.Millisecond }, "ui.refresh_interval"},
		{"refresh off", func(c *Config) { c.UI.RefreshInterval = 0 }, ""},
		{"pending is not a filter", func(c *Config) { c.UI.InitialState = "pending" }, "ui.initial_state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := ValidateConfig(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
