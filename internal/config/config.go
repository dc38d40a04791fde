// Package config loads ruledeck configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/willibrandon/ruledeck/internal/alerts"
)

// Source kinds
const (
	SourceGrafana = "grafana"
	SourceSQLite  = "sqlite"
)

// Config represents the root configuration structure
type Config struct {
	Source  string        `mapstructure:"source"`
	Grafana GrafanaConfig `mapstructure:"grafana"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Debug   bool          `mapstructure:"debug"`
	LogFile string        `mapstructure:"log_file"`
}

// GrafanaConfig holds the dashboard server connection settings
type GrafanaConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	OrgID   int64         `mapstructure:"org_id"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds the local SQLite database settings
type StorageConfig struct {
	// Path is the database file. It backs the sqlite source and persists view state.
	Path string `mapstructure:"path"`

	// Retention is how long pause/resume history is kept. Zero keeps everything.
	Retention time.Duration `mapstructure:"retention"`
}

// UIConfig holds user interface preferences
type UIConfig struct {
	Theme           string        `mapstructure:"theme"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	DateFormat      string        `mapstructure:"date_format"`
	// InitialState is the filter used when no filter has been saved yet.
	InitialState string `mapstructure:"initial_state"`
}

// LoadConfig loads configuration from the default locations and environment variables
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file: defaults and environment only
	}

	return unmarshal(v)
}

// LoadConfigFromPath loads configuration from an explicit file
func LoadConfigFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("RULEDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	applyDefaults(v)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	switch cfg.Source {
	case SourceGrafana:
		if cfg.Grafana.URL == "" {
			return fmt.Errorf("grafana.url cannot be empty when source is %q", SourceGrafana)
		}
		if !strings.HasPrefix(cfg.Grafana.URL, "http://") && !strings.HasPrefix(cfg.Grafana.URL, "https://") {
			return fmt.Errorf("grafana.url must start with http:// or https://, got %s", cfg.Grafana.URL)
		}
		if cfg.Grafana.Timeout <= 0 {
			return fmt.Errorf("grafana.timeout must be positive, got %v", cfg.Grafana.Timeout)
		}
	case SourceSQLite:
		if cfg.Storage.Path == "" {
			return fmt.Errorf("storage.path cannot be empty when source is %q", SourceSQLite)
		}
	default:
		return fmt.Errorf("source must be one of: %v, got %s", []string{SourceGrafana, SourceSQLite}, cfg.Source)
	}

	if cfg.Storage.Retention < 0 {
		return fmt.Errorf("storage.retention cannot be negative, got %v", cfg.Storage.Retention)
	}

	validThemes := []string{"dark", "light"}
	validTheme := false
	for _, theme := range validThemes {
		if cfg.UI.Theme == theme {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("ui.theme must be one of: %v, got %s", validThemes, cfg.UI.Theme)
	}

	if cfg.UI.RefreshInterval != 0 && (cfg.UI.RefreshInterval < time.Second || cfg.UI.RefreshInterval > time.Hour) {
		return fmt.Errorf("ui.refresh_interval must be 0 (off) or between 1s and 1h, got %v", cfg.UI.RefreshInterval)
	}

	if _, err := alerts.ParseFilter(cfg.UI.InitialState); err != nil {
		return fmt.Errorf("ui.initial_state: %w", err)
	}

	return nil
}

// configDir returns ~/.config/ruledeck.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "ruledeck")
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	v.SetDefault("source", SourceSQLite)

	v.SetDefault("grafana.url", "http://localhost:3000")
	v.SetDefault("grafana.api_key", "")
	v.SetDefault("grafana.org_id", 0)
	v.SetDefault("grafana.timeout", "10s")

	v.SetDefault("storage.path", filepath.Join(configDir(), "ruledeck.db"))
	v.SetDefault("storage.retention", "720h")

	v.SetDefault("ui.theme", "dark")
	v.SetDefault("ui.refresh_interval", "30s")
	v.SetDefault("ui.date_format", "2006-01-02 15:04:05")
	v.SetDefault("ui.initial_state", string(alerts.FilterAll))

	v.SetDefault("debug", false)
	v.SetDefault("log_file", "")
}
