package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the forest configuration.
type Config struct {
	Seed            int64  `yaml:"seed"`
	Border          int    `yaml:"border"`          // columns skipped at each side when scanning
	GroundClearance int    `yaml:"groundClearance"` // rows skipped at the bottom when scanning
	Kinds           string `yaml:"kinds"`           // go-getter source of the kind definitions
	KindsDir        string `yaml:"kindsDir"`

	// VanillaTrunks are tile types walked as tree trunks without a
	// registered kind.
	VanillaTrunks []uint16 `yaml:"vanillaTrunks"`

	SnapshotDir string `yaml:"snapshotDir"`
	LogLevel    string `yaml:"logLevel"` // debug, info, warn or error
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Border:          20,
		GroundClearance: 20,
		KindsDir:        "kinds",
		SnapshotDir:     "snapshots",
		LogLevel:        "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills empty fields with defaults and rejects bad values.
func (c *Config) Validate() error {
	if c.Border < 0 {
		return fmt.Errorf("border %d must not be negative", c.Border)
	}
	if c.GroundClearance < 0 {
		return fmt.Errorf("groundClearance %d must not be negative", c.GroundClearance)
	}
	if c.KindsDir == "" {
		c.KindsDir = "kinds"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	return nil
}

// Level returns the configured log level, info when unset or invalid.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Merge applies file-loaded values into cfg, but only for fields the host
// did NOT set explicitly. explicit holds the YAML names of those fields.
func Merge(cfg *Config, fromFile *Config, explicit map[string]bool) {
	if !explicit["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicit["border"] {
		cfg.Border = fromFile.Border
	}
	if !explicit["groundClearance"] {
		cfg.GroundClearance = fromFile.GroundClearance
	}
	if !explicit["kinds"] {
		cfg.Kinds = fromFile.Kinds
	}
	if !explicit["kindsDir"] {
		cfg.KindsDir = fromFile.KindsDir
	}
	if !explicit["vanillaTrunks"] {
		cfg.VanillaTrunks = fromFile.VanillaTrunks
	}
	if !explicit["snapshotDir"] {
		cfg.SnapshotDir = fromFile.SnapshotDir
	}
	if !explicit["logLevel"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}
