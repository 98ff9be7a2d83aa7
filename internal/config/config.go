package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port     string `envconfig:"PORT" default:"3000"`
	GinMode  string `envconfig:"GIN_MODE" default:"debug"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Catalog settings
	CatalogBaseURL    string        `envconfig:"CATALOG_BASE_URL" default:"https://itunes.apple.com"`
	CatalogStorefront string        `envconfig:"CATALOG_STOREFRONT" default:"in"`
	CatalogTimeout    time.Duration `envconfig:"CATALOG_TIMEOUT" default:"10s"`
	CatalogUserAgent  string        `envconfig:"CATALOG_USER_AGENT" default:"moviepreview/1.0"`

	// Require wrapperType "track" in the song search fallback as well
	StrictFallback bool `envconfig:"STRICT_FALLBACK" default:"false"`

	// Session state for the web UI. Without VALKEY_URL sessions live in memory.
	ValkeyURL       string        `envconfig:"VALKEY_URL"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	SessionMaxItems int           `envconfig:"SESSION_MAX_ITEMS" default:"1000"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks value ranges and formats envconfig cannot express
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported GIN_MODE: %s", c.GinMode)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	u, err := url.Parse(c.CatalogBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CATALOG_BASE_URL must be an absolute URL: %q", c.CatalogBaseURL)
	}

	if strings.Trim(c.CatalogStorefront, "/ ") == "" {
		return fmt.Errorf("CATALOG_STOREFRONT cannot be empty")
	}

	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.SessionMaxItems < 0 {
		return fmt.Errorf("SESSION_MAX_ITEMS cannot be negative")
	}

	return nil
}

// ParseLogLevel maps a LOG_LEVEL value onto a slog level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported LOG_LEVEL: %s", level)
	}
}
