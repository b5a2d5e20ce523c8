// Package config loads runtime settings from STICKER_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds all sticker manager settings.
type Config struct {
	DBPath            string  `env:"DB_PATH" envDefault:"db/stick.db"`
	LogLevel          string  `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string  `env:"LOG_FORMAT" envDefault:"console"`
	MaxCollectionSize int     `env:"MAX_COLLECTION_SIZE" envDefault:"1000"`
	WindowWidth       float32 `env:"WINDOW_WIDTH" envDefault:"1100"`
	WindowHeight      float32 `env:"WINDOW_HEIGHT" envDefault:"700"`
}

const (
	envPrefix = "STICKER_"

	MinWindowWidth  = 900
	MinWindowHeight = 500
)

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unusable settings and clamps the window to its minimum size.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("database path is required")
	}
	if c.MaxCollectionSize <= 0 {
		return fmt.Errorf("max collection size must be positive, got %d", c.MaxCollectionSize)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.WindowWidth < MinWindowWidth {
		c.WindowWidth = MinWindowWidth
	}
	if c.WindowHeight < MinWindowHeight {
		c.WindowHeight = MinWindowHeight
	}
	return nil
}
