// File path: internal/sqlite/config.go
package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the connection pool in front of the SQLite file. Each
// request borrows its own pooled connection; the file itself serialises
// writers, bounded by BusyTimeout.
type Config struct {
	Path string `env:"-"`

	MaxOpenConns    int           `env:"SQLITE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `env:"SQLITE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `env:"SQLITE_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration `env:"SQLITE_CONN_MAX_IDLE_TIME"`
	BusyTimeout     time.Duration `env:"SQLITE_BUSY_TIMEOUT"`
}

// Merge overlays the non-zero fields of override onto c.
func (c Config) Merge(override Config) Config {
	result := c
	if trimmed := strings.TrimSpace(override.Path); trimmed != "" {
		result.Path = trimmed
	}
	if override.MaxOpenConns > 0 {
		result.MaxOpenConns = override.MaxOpenConns
	}
	if override.MaxIdleConns > 0 {
		result.MaxIdleConns = override.MaxIdleConns
	}
	if override.ConnMaxLifetime > 0 {
		result.ConnMaxLifetime = override.ConnMaxLifetime
	}
	if override.ConnMaxIdleTime > 0 {
		result.ConnMaxIdleTime = override.ConnMaxIdleTime
	}
	if override.BusyTimeout > 0 {
		result.BusyTimeout = override.BusyTimeout
	}
	return result
}

// LoadConfig reads pool settings from SQLITE_* variables and fills defaults.
// The database path is supplied by the caller.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse sqlite env: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 8
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = 15 * time.Minute
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = 5 * time.Minute
	}
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = 5 * time.Second
	}
}
