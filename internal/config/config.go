package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// DefaultBaseURL is the backend the client talks to when nothing overrides it.
const DefaultBaseURL = "http://localhost:8000/api/v1"

const (
	defaultTrendingLimit    = 6
	defaultDescriptionLimit = 120
	defaultHistoryLimit     = 10
)

type Config struct {
	BaseURL          string `yaml:"base_url"`
	Locale           string `yaml:"locale,omitempty"` // empty: resolve from LC_ALL / LC_TIME / LANG
	TrendingLimit    int    `yaml:"trending_limit"`
	DescriptionLimit int    `yaml:"description_limit"`
	HistoryLimit     int    `yaml:"history_limit"`
	LogLevel         string `yaml:"log_level"`
}

// GetBaseURL returns the backend base URL without a trailing slash.
func (c *Config) GetBaseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

// GetTrendingLimit returns how many trending cards to show, defaulting to 6.
func (c *Config) GetTrendingLimit() int {
	if c.TrendingLimit <= 0 {
		return defaultTrendingLimit
	}
	return c.TrendingLimit
}

// GetDescriptionLimit returns the trending description cut-off, defaulting to 120.
func (c *Config) GetDescriptionLimit() int {
	if c.DescriptionLimit <= 0 {
		return defaultDescriptionLimit
	}
	return c.DescriptionLimit
}

// GetHistoryLimit returns the server-side history cap shown in the panel title.
// The client never truncates history itself.
func (c *Config) GetHistoryLimit() int {
	if c.HistoryLimit <= 0 {
		return defaultHistoryLimit
	}
	return c.HistoryLimit
}

func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsdesk", "config.yaml")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "newsdesk", "newsdesk.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (or the default path) on top of the embedded
// defaults. A missing file is created from the defaults on first run.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: embedded defaults are enough to run
			_ = writeDefaults(path)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Unmarshalling over the defaults keeps every key the user left out.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// ValidateBaseURL rejects anything that is not an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("base_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url: host is required")
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.BaseURL != "" {
		if err := ValidateBaseURL(cfg.BaseURL); err != nil {
			return err
		}
	}
	if cfg.TrendingLimit < 0 {
		return fmt.Errorf("trending_limit: must not be negative, got %d", cfg.TrendingLimit)
	}
	if cfg.DescriptionLimit < 0 {
		return fmt.Errorf("description_limit: must not be negative, got %d", cfg.DescriptionLimit)
	}
	validLevels := map[string]bool{"": true, "trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(cfg.LogLevel)] {
		return fmt.Errorf("log_level: unknown level %q", cfg.LogLevel)
	}
	return nil
}
