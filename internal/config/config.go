// File path: internal/config/config.go

// Package config loads process configuration from the environment. A .env
// file in the working directory is applied first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the top-level server configuration.
type Config struct {
	Addr            string        `env:"CASEMATE_ADDR"             envDefault:":8000"`
	DatabasePath    string        `env:"CASEMATE_DB_PATH"          envDefault:"data/casemate.db"`
	StaticDir       string        `env:"CASEMATE_STATIC_DIR"       envDefault:"dist"`
	MaxUploadBytes  int64         `env:"CASEMATE_MAX_UPLOAD_BYTES" envDefault:"10485760"`
	ShutdownTimeout time.Duration `env:"CASEMATE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL"                 envDefault:"info"`

	AI        AIConfig
	Telemetry TelemetryConfig
}

// AIConfig controls the completion proxy. An empty Token leaves the proxy
// unconfigured.
type AIConfig struct {
	Token   string        `env:"HACKCLUB_AI_TOKEN"`
	BaseURL string        `env:"AI_BASE_URL" envDefault:"https://ai.hackclub.com/proxy/v1"`
	Timeout time.Duration `env:"AI_TIMEOUT"  envDefault:"30s"`
}

// TelemetryConfig points span export at an OTLP/HTTP collector. Export is
// off while Endpoint is empty.
type TelemetryConfig struct {
	Endpoint string `env:"CASEMATE_OTEL_ENDPOINT"`
	Enabled  bool   `env:"CASEMATE_OTEL_ENABLED" envDefault:"true"`
}

// LoadDotEnv applies variables from the given files (".env" when none are
// named). Variables already set in the process win. A missing file is not an
// error; loaded reports whether anything was read.
func LoadDotEnv(files ...string) (loaded bool, err error) {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load .env: %w", err)
	}
	return true, nil
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
