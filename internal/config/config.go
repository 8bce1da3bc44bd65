package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"

	"github.com/nickc01/rvc-model-fetcher/internal/catalog"
)

// Config represents the entire tool configuration
type Config struct {
	Remote  RemoteConfig  `mapstructure:"remote"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RemoteConfig contains the artifact host settings
type RemoteConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// FetchConfig contains fetch behavior settings
type FetchConfig struct {
	RootDir          string `mapstructure:"root_dir"`
	ChunkSize        int    `mapstructure:"chunk_size"`
	ProgressInterval string `mapstructure:"progress_interval"`
}

// CatalogConfig points at an optional catalog override file
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// HistoryConfig controls the optional fetch-history ledger
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from the given file path. An empty path means
// defaults only; a non-empty path must exist and parse.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("remote.base_url", catalog.DefaultBaseURL)
	v.SetDefault("fetch.root_dir", ".")
	v.SetDefault("fetch.chunk_size", 8192)
	v.SetDefault("fetch.progress_interval", "500ms")
	v.SetDefault("catalog.path", "")
	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Remote.BaseURL == "" {
		return fmt.Errorf("remote.base_url is required")
	}
	if _, err := url.ParseRequestURI(c.Remote.BaseURL); err != nil {
		return fmt.Errorf("invalid remote.base_url: %w", err)
	}

	if c.Fetch.RootDir == "" {
		return fmt.Errorf("fetch.root_dir is required")
	}
	if c.Fetch.ChunkSize <= 0 {
		return fmt.Errorf("fetch.chunk_size must be positive")
	}
	if _, err := time.ParseDuration(c.Fetch.ProgressInterval); err != nil {
		return fmt.Errorf("invalid fetch.progress_interval: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
		// Valid formats
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// GetProgressInterval returns the progress interval as time.Duration
func (c *FetchConfig) GetProgressInterval() time.Duration {
	d, _ := time.ParseDuration(c.ProgressInterval)
	if d == 0 {
		return 500 * time.Millisecond
	}
	return d
}
