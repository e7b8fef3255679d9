// Package config loads and validates the teamdraft configuration via viper.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete teamdraft configuration
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Roster  RosterConfig  `mapstructure:"roster"`
	Save    SaveConfig    `mapstructure:"save"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// UIConfig controls the terminal UI behavior
type UIConfig struct {
	// Theme is the color theme (default: "default")
	Theme string `mapstructure:"theme"`
	// Cadence controls when roster changes become frames
	// Options: "immediate", "deferred", "rate_limited"
	Cadence string `mapstructure:"cadence"`
	// RenderIntervalMs is the minimum milliseconds between frames when
	// cadence is "rate_limited"
	RenderIntervalMs int `mapstructure:"render_interval_ms"`
}

// RosterConfig controls roster limits
type RosterConfig struct {
	// MaxTotal is the largest roster size the setup stage accepts
	MaxTotal int `mapstructure:"max_total"`
}

// SaveConfig controls where finished splits are persisted
type SaveConfig struct {
	// Endpoint is the URL splits are POSTed to; empty disables saving
	Endpoint string `mapstructure:"endpoint"`
	// TimeoutSeconds bounds a save request
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled turns file logging on
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Dir is where log files are written; empty uses the config dir
	Dir string `mapstructure:"dir"`
}

// RenderInterval returns the rate-limited cadence interval as a duration
func (u *UIConfig) RenderInterval() time.Duration {
	return time.Duration(u.RenderIntervalMs) * time.Millisecond
}

// SaveTimeout returns the save timeout as a duration
func (s *SaveConfig) SaveTimeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Theme:            "default",
			Cadence:          "deferred",
			RenderIntervalMs: 50,
		},
		Roster: RosterConfig{
			MaxTotal: 200,
		},
		Save: SaveConfig{
			Endpoint:       "",
			TimeoutSeconds: 10,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers all default values with viper
func SetDefaults() {
	defaults := Default()

	// UI defaults
	viper.SetDefault("ui.theme", defaults.UI.Theme)
	viper.SetDefault("ui.cadence", defaults.UI.Cadence)
	viper.SetDefault("ui.render_interval_ms", defaults.UI.RenderIntervalMs)

	// Roster defaults
	viper.SetDefault("roster.max_total", defaults.Roster.MaxTotal)

	// Save defaults
	viper.SetDefault("save.endpoint", defaults.Save.Endpoint)
	viper.SetDefault("save.timeout_seconds", defaults.Save.TimeoutSeconds)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "teamdraft")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".teamdraft"
	}
	return filepath.Join(home, ".config", "teamdraft")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidCadences returns the list of valid render cadence values
func ValidCadences() []string {
	return []string{"immediate", "deferred", "rate_limited"}
}

// IsValidCadence checks if the given cadence is valid
func IsValidCadence(cadence string) bool {
	for _, c := range ValidCadences() {
		if c == cadence {
			return true
		}
	}
	return false
}
