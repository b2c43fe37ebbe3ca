// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/curator/config.yaml",
	"/etc/curator/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load assembles the configuration: struct defaults, then an optional
// YAML file, then environment variables (highest priority).
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// CURATOR_HTTP_PORT -> server.port, CURATOR_LOG_LEVEL -> logging.level
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// CORS origins arrive as a comma-separated string from the environment.
	if origins := k.String("api.cors_origins"); origins != "" && strings.Contains(origins, ",") {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := k.Set("api.cors_origins", parts); err != nil {
			return nil, fmt.Errorf("failed to split cors origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile locates the config file: CONFIG_PATH first, then the
// default search paths.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped keys return empty string and are skipped, so unrelated
// environment variables never pollute the config.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"curator_http_host":   "server.host",
		"curator_http_port":   "server.port",
		"curator_timeout":     "server.timeout",
		"curator_environment": "server.environment",

		// Logging mappings
		"curator_log_level":  "logging.level",
		"curator_log_format": "logging.format",
		"curator_log_caller": "logging.caller",

		// API mappings
		"curator_api_default_page_size": "api.default_page_size",
		"curator_api_max_page_size":     "api.max_page_size",
		"curator_rate_limit_requests":   "api.rate_limit_requests",
		"curator_rate_limit_window":     "api.rate_limit_window",
		"curator_cors_origins":          "api.cors_origins",

		// Ranker mappings
		"curator_ranker_seed":                "ranker.seed",
		"curator_ranker_base_weight":         "ranker.base_weight",
		"curator_ranker_decay_step":          "ranker.decay_step",
		"curator_ranker_noise_magnitude":     "ranker.noise_magnitude",
		"curator_ranker_base_confidence":     "ranker.base_confidence",
		"curator_ranker_confidence_variance": "ranker.confidence_variance",

		// Rules mappings
		"curator_rules_path":          "rules.path",
		"curator_rules_seed_defaults": "rules.seed_defaults",

		// Audit mappings
		"curator_audit_backend":     "audit.backend",
		"curator_audit_path":        "audit.path",
		"curator_audit_max_entries": "audit.max_entries",

		// Catalog mappings
		"curator_catalog_seed_data": "catalog.seed_data",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
