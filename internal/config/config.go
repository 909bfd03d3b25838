// Package config loads the optional cachyhist configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultLogPath is where pacman writes its transaction log.
const DefaultLogPath = "/var/log/pacman.log"

// Config holds user defaults. Command-line flags override every field.
type Config struct {
	// LogPath is the current pacman log file.
	LogPath string `yaml:"log_path"`

	// RotatedLogs are older, size-capped predecessors of the log,
	// listed oldest first. They are read before LogPath so the
	// combined sequence stays chronological.
	RotatedLogs []string `yaml:"rotated_logs"`

	// Color is "auto", "always", or "never".
	Color string `yaml:"color"`

	// ExactMatch makes package-name filtering an exact match instead
	// of the default case-insensitive substring match.
	ExactMatch bool `yaml:"exact_match"`

	// Notifications enables the desktop notification after exports.
	Notifications bool `yaml:"notifications"`

	// DefaultLimit caps how many events the history view shows when
	// no --limit flag is given. Zero shows everything.
	DefaultLimit int `yaml:"default_limit"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogPath:       DefaultLogPath,
		Color:         "auto",
		Notifications: true,
	}
}

// Dir returns the cachyhist config directory, respecting
// XDG_CONFIG_HOME. Defaults to ~/.config/cachyhist.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "cachyhist"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path. A missing file is not an error
// and yields the defaults; a present but invalid file is fatal, with
// the path in the message.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color: %q is not one of auto, always, never", c.Color)
	}
	if c.LogPath == "" {
		c.LogPath = DefaultLogPath
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.DefaultLimit < 0 {
		return fmt.Errorf("default_limit: must not be negative, got %d", c.DefaultLimit)
	}
	return nil
}

// LogPaths returns every log file to read, oldest first.
func (c *Config) LogPaths() []string {
	paths := make([]string, 0, len(c.RotatedLogs)+1)
	paths = append(paths, c.RotatedLogs...)
	return append(paths, c.LogPath)
}
