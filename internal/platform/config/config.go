// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct. A local '.env' file, when present, is loaded first with 'godotenv' so
development machines need no exported variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components via constructors.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/taibuivan/reignline/internal/layout"
	"github.com/taibuivan/reignline/internal/platform/constants"
	"github.com/taibuivan/reignline/pkg/query"
)

// Dataset sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the Reignline server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// DatasetSource selects where records are read from: "file" or "postgres".
	DatasetSource string `env:"DATASET_SOURCE" envDefault:"file"`

	// DatasetPath is the YAML or JSON dataset used by the file source.
	DatasetPath string `env:"DATASET_PATH" envDefault:"./data/seed/franks.yaml"`

	// Relational Database (PostgreSQL), required by the postgres source
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Scene cache (Redis). Empty disables Redis in favour of the in-process cache.
	RedisURL      string        `env:"REDIS_URL"`
	SceneCacheTTL time.Duration `env:"SCENE_CACHE_TTL" envDefault:"10m"`

	// Timeline defaults applied when a scene request leaves them out
	TimelineMinYear int     `env:"TIMELINE_MIN_YEAR" envDefault:"450"`
	TimelineMaxYear int     `env:"TIMELINE_MAX_YEAR" envDefault:"2025"`
	DefaultZoom     float64 `env:"DEFAULT_ZOOM"      envDefault:"10"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load reads an optional .env file, then parses environment variables into a [Config].
func Load() (*Config, error) {

	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field rules the struct tags cannot express.
func (c *Config) Validate() error {
	switch c.DatasetSource {
	case SourceFile:
		if c.DatasetPath == "" {
			return errors.New("config: DATASET_PATH is required for the file dataset source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres dataset source")
		}
	default:
		return fmt.Errorf("config: unknown DATASET_SOURCE %q", c.DatasetSource)
	}

	if c.TimelineMaxYear <= c.TimelineMinYear {
		return fmt.Errorf("config: TIMELINE_MAX_YEAR (%d) must be after TIMELINE_MIN_YEAR (%d)", c.TimelineMaxYear, c.TimelineMinYear)
	}
	if err := layout.CheckYearRange(c.TimelineMinYear, c.TimelineMaxYear); err != nil {
		return fmt.Errorf("config: TIMELINE_MIN_YEAR/TIMELINE_MAX_YEAR out of bounds: %w", err)
	}
	if c.DefaultZoom <= 0 {
		return errors.New("config: DEFAULT_ZOOM must be positive")
	}
	if c.SceneCacheTTL < 0 {
		return errors.New("config: SCENE_CACHE_TTL must not be negative")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins lists the CORS origins accepted outside development.
func (c *Config) AllowedOrigins() []string {
	return append([]string{constants.DefaultAllowedOrigin}, query.StringSlice(c.ExtraOrigins)...)
}
