// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package config

import (
	"fmt"
	"time"

	"github.com/iarecomend/curator/internal/recommend"
)

// Config is the root application configuration, assembled from struct
// defaults, an optional YAML file, and environment variables, in that
// order of precedence.
type Config struct {
	Server  ServerConfig     `koanf:"server"`
	Logging LoggingConfig    `koanf:"logging"`
	API     APIConfig        `koanf:"api"`
	Ranker  recommend.Config `koanf:"ranker"`
	Rules   RulesConfig      `koanf:"rules"`
	Audit   AuditConfig      `koanf:"audit"`
	Catalog CatalogConfig    `koanf:"catalog"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// Timeout applies to request read/write and graceful shutdown.
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production".
	Environment string `koanf:"environment"`
}

// LoggingConfig holds the zerolog settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error, fatal.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`

	// Caller adds file:line to log events.
	Caller bool `koanf:"caller"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	// DefaultPageSize is the page size applied when a list request omits one.
	DefaultPageSize int `koanf:"default_page_size"`

	// MaxPageSize caps requested page sizes.
	MaxPageSize int `koanf:"max_page_size"`

	// RateLimitRequests is the number of requests allowed per window per IP.
	RateLimitRequests int `koanf:"rate_limit_requests"`

	// RateLimitWindow is the rate limiting window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists the allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// RulesConfig controls the business rule set loaded at startup.
type RulesConfig struct {
	// Path is an optional YAML file with rule definitions.
	Path string `koanf:"path"`

	// SeedDefaults installs the built-in rule set before loading Path.
	SeedDefaults bool `koanf:"seed_defaults"`
}

// AuditConfig selects the audit trail backend.
type AuditConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `koanf:"backend"`

	// Path is the sqlite database file, used when Backend is "sqlite".
	Path string `koanf:"path"`

	// MaxEntries caps the in-memory store.
	MaxEntries int `koanf:"max_entries"`
}

// CatalogConfig controls the in-memory catalog provider.
type CatalogConfig struct {
	// SeedData installs the demo catalog and customer profiles.
	SeedData bool `koanf:"seed_data"`
}

// Default returns a Config with all default values, without consulting
// config files or the environment.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8385,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		API: APIConfig{
			DefaultPageSize:   20,
			MaxPageSize:       100,
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
		Ranker:  *recommend.DefaultConfig(),
		Rules:   RulesConfig{SeedDefaults: true},
		Audit:   AuditConfig{Backend: "memory", MaxEntries: 10000},
		Catalog: CatalogConfig{SeedData: true},
	}
}

// Validate checks cross-field constraints after loading.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port = %d, must be in [1, 65535]", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("server.environment = %q, must be development or production", c.Server.Environment)
	}

	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("api.default_page_size = %d, must be in [1, max_page_size]", c.API.DefaultPageSize)
	}
	if c.API.RateLimitRequests < 1 {
		return fmt.Errorf("api.rate_limit_requests must be positive")
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be positive")
	}

	if err := c.Ranker.Validate(); err != nil {
		return fmt.Errorf("ranker: %w", err)
	}

	switch c.Audit.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("audit.backend = %q, must be memory or sqlite", c.Audit.Backend)
	}
	if c.Audit.Backend == "sqlite" && c.Audit.Path == "" {
		return fmt.Errorf("audit.path is required for the sqlite backend")
	}
	if c.Audit.MaxEntries < 1 {
		return fmt.Errorf("audit.max_entries must be positive")
	}

	return nil
}
