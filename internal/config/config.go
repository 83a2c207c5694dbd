package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port       string        `env:"PORT" envDefault:"8080"`
	FrameRate  int           `env:"FRAME_RATE" envDefault:"60"` // renders per second
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"1h"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FrameRate <= 0 {
		return Config{}, fmt.Errorf("FRAME_RATE must be positive, got %d", cfg.FrameRate)
	}
	return cfg, nil
}

// FrameInterval is the delay between two renders. It is zero for an unset
// frame rate.
func (c Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FrameRate)
}
