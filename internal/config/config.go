// ABOUTME: Configuration management with storage backend selection
// ABOUTME: Handles the config file, environment overrides and the storage factory

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/mitchellh/go-homedir"

	"github.com/harper/curio/internal/storage"
)

// Config stores curio configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "yaml".
	Backend string `json:"backend,omitempty" env:"CURIO_BACKEND"`

	// DataDir is the root directory for data storage.
	// SQLite puts curio.db here. YAML puts _cache.yaml and _items.yaml here.
	// Supports ~ expansion. Defaults to ~/.local/share/curio.
	DataDir string `json:"data_dir,omitempty" env:"CURIO_DATA_DIR"`

	// FeedURL is the feed document endpoint.
	FeedURL string `json:"feed_url,omitempty" env:"CURIO_FEED_URL"`

	// CacheValidity is how long a fetched feed is trusted without refetching.
	CacheValidity Duration `json:"cache_validity,omitempty" env:"CURIO_CACHE_VALIDITY"`

	// HistoryDays is the default window for recent items.
	HistoryDays int `json:"history_days,omitempty" env:"CURIO_HISTORY_DAYS"`

	// HTTPTimeout bounds a single feed request.
	HTTPTimeout Duration `json:"http_timeout,omitempty" env:"CURIO_HTTP_TIMEOUT"`
}

// Duration is a time.Duration written as text ("1h", "30s") in config files
// and environment variables.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return DefaultBackend
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetFeedURL returns the feed endpoint.
func (c *Config) GetFeedURL() string {
	if c.FeedURL == "" {
		return DefaultFeedURL
	}
	return c.FeedURL
}

// GetCacheValidity returns the cache validity window.
func (c *Config) GetCacheValidity() time.Duration {
	if c.CacheValidity <= 0 {
		return DefaultCacheValidity
	}
	return time.Duration(c.CacheValidity)
}

// GetHistoryDays returns the recent-items window in days.
func (c *Config) GetHistoryDays() int {
	if c.HistoryDays <= 0 {
		return DefaultHistoryDays
	}
	return c.HistoryDays
}

// GetHTTPTimeout returns the per-request timeout.
func (c *Config) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout <= 0 {
		return DefaultHTTPTimeout
	}
	return time.Duration(c.HTTPTimeout)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// OpenStorage creates a Store implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Store, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case "sqlite":
		return storage.NewSQLiteStore(filepath.Join(dataDir, DBFilename))
	case "yaml":
		return storage.NewYAMLStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := homedir.Dir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "curio", "config.json")
}

// Load reads config from disk and applies CURIO_* environment overrides.
// A missing file yields defaults, which are written back when possible.
func Load() (*Config, error) {
	cfg, err := readFile(GetConfigPath())
	if err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultConfig()
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return storage.AtomicWrite(path, data)
}

// defaultDataDir returns the standard XDG data directory for curio.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := homedir.Dir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "curio")
}

func defaultConfig() *Config {
	return &Config{
		Backend:       DefaultBackend,
		FeedURL:       DefaultFeedURL,
		CacheValidity: Duration(DefaultCacheValidity),
		HistoryDays:   DefaultHistoryDays,
		HTTPTimeout:   Duration(DefaultHTTPTimeout),
	}
}

// Defaults returns the built-in configuration with every field filled in.
func Defaults() *Config {
	cfg := defaultConfig()
	cfg.DataDir = defaultDataDir()
	return cfg
}
