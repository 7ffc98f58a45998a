// Package config loads runtime settings for the camrig binaries from the
// environment. Flags parsed in main override what Load returns.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Scene    string   `env:"CAMRIG_SCENE"     envDefault:"scene.yaml"`
	Blends   string   `env:"CAMRIG_BLENDS"    envDefault:"blends.yaml"`
	Script   string   `env:"CAMRIG_SCRIPT"`
	Watch    []string `env:"CAMRIG_WATCH"     envSeparator:","`
	Debug    bool     `env:"CAMRIG_DEBUG"`
	TickRate int      `env:"CAMRIG_TICK_RATE" envDefault:"60"`
}

// Load parses the CAMRIG_* environment variables.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Scene == "" {
		errs = append(errs, errors.New("config: scene is required"))
	}
	if c.TickRate <= 0 || c.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("config: tick rate %d out of range (1-1000)", c.TickRate))
	}
	return errors.Join(errs...)
}

// DeltaTime is the fixed step length in seconds.
func (c Config) DeltaTime() float32 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float32(c.TickRate)
}

// Logger builds a text logger writing to w, at debug level when Debug is set.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
