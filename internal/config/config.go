// Package config provides configuration management for vcardgen.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the vcardgen configuration.
type Config struct {
	LogLevel string       `yaml:"log_level"` // debug, info, warn or error
	Card     CardConfig   `yaml:"card"`
	Media    MediaConfig  `yaml:"media"`
	Server   ServerConfig `yaml:"server"`
	Output   OutputConfig `yaml:"output"`
}

// CardConfig contains rendering settings.
type CardConfig struct {
	Charset string `yaml:"charset"`
}

// MediaConfig contains settings for fetching logos and photos.
type MediaConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxSize      int64         `yaml:"max_size"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	CacheEntries int           `yaml:"cache_entries"` // 0 disables the cache
}

// ServerConfig contains settings for the card server.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	Prefix      string `yaml:"prefix"`
	Realm       string `yaml:"realm"`
	Users       []User `yaml:"users"`
	SeedDir     string `yaml:"seed_dir"`
	QRSize      int    `yaml:"qr_size"`
	MaxBodySize int64  `yaml:"max_body_size"`
}

// User is an account allowed to write cards.
type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// OutputConfig contains settings for saved documents.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Card: CardConfig{
			Charset: "utf-8",
		},
		Media: MediaConfig{
			Timeout:      10 * time.Second,
			MaxSize:      10 << 20,
			CacheTTL:     15 * time.Minute,
			CacheEntries: 1000,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			Prefix:      "/cards/",
			Realm:       "vCard Server",
			QRSize:      256,
			MaxBodySize: 1 << 20,
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "vcardgen", "config.yaml")
}

// Load loads the configuration from a file. Settings missing from the file
// keep their defaults, and a missing file yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves the configuration to a file.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// may hold passwords
	return os.WriteFile(path, data, 0600)
}

// Validate checks settings that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Media.Timeout < 0 {
		return fmt.Errorf("media timeout must not be negative: %s", c.Media.Timeout)
	}
	if c.Media.MaxSize < 0 {
		return fmt.Errorf("media max_size must not be negative: %d", c.Media.MaxSize)
	}
	if c.Server.QRSize < 0 {
		return fmt.Errorf("server qr_size must not be negative: %d", c.Server.QRSize)
	}
	seen := make(map[string]bool, len(c.Server.Users))
	for i, u := range c.Server.Users {
		if u.Username == "" {
			return fmt.Errorf("server user %d has no username", i)
		}
		if seen[u.Username] {
			return fmt.Errorf("server user %q listed twice", u.Username)
		}
		seen[u.Username] = true
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level. An empty name is info.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}
