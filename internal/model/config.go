package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// RefreshConfig holds the timing knobs for the refresh orchestrator.
type RefreshConfig struct {
	// AutoRefresh enables the periodic background refresh.
	AutoRefresh bool `mapstructure:"auto_refresh" yaml:"auto_refresh"`

	// IntervalSec is how often (in seconds) the periodic refresh runs.
	IntervalSec int `mapstructure:"interval_sec" yaml:"interval_sec"`

	// DebounceMs is the delay used to coalesce bursts of store
	// notifications into one local sync.
	DebounceMs int `mapstructure:"debounce_ms" yaml:"debounce_ms"`

	// InitialDelayMs is the delay before the one-shot refresh scheduled
	// at initialization.
	InitialDelayMs int `mapstructure:"initial_delay_ms" yaml:"initial_delay_ms"`

	// CooldownMs is how long after a completed refresh before another
	// may start.
	CooldownMs int `mapstructure:"cooldown_ms" yaml:"cooldown_ms"`
}

// BackendConfig identifies the remote event store.
type BackendConfig struct {
	// BaseURL is the root URL of the event store API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// EventID scopes which event's records are fetched.
	EventID string `mapstructure:"event_id" yaml:"event_id"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`

	// UserID is the current user, used by volunteer and director rules.
	UserID string `mapstructure:"user_id" yaml:"user_id"`

	// Role selects which rule table the CLI derives tasks for.
	Role string `mapstructure:"role" yaml:"role"`

	Refresh RefreshConfig `mapstructure:"refresh" yaml:"refresh"`

	// CachePath is the SQLite file holding the last-good snapshot.
	CachePath string `mapstructure:"cache_path" yaml:"cache_path"`

	// Debug enables verbose logging.
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/eventops/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "eventops", "config.yaml")
}

// DefaultCachePath returns the default SQLite cache file location.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cache.db")
	}
	return filepath.Join(home, ".config", "eventops", "cache.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Role: string(RoleVolunteer),
		Refresh: RefreshConfig{
			AutoRefresh:    true,
			IntervalSec:    30,
			DebounceMs:     150,
			InitialDelayMs: 500,
			CooldownMs:     1000,
		},
		CachePath: DefaultCachePath(),
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("role", string(RoleVolunteer))
	v.SetDefault("refresh.auto_refresh", true)
	v.SetDefault("refresh.interval_sec", 30)
	v.SetDefault("refresh.debounce_ms", 150)
	v.SetDefault("refresh.initial_delay_ms", 500)
	v.SetDefault("refresh.cooldown_ms", 1000)
	v.SetDefault("cache_path", DefaultCachePath())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("backend", cfg.Backend)
	v.Set("user_id", cfg.UserID)
	v.Set("role", cfg.Role)
	v.Set("refresh", cfg.Refresh)
	v.Set("cache_path", cfg.CachePath)
	v.Set("debug", cfg.Debug)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
