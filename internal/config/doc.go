// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

// Package config loads and validates the application configuration.
//
// Configuration is layered with koanf, lowest to highest priority:
//
//  1. Struct defaults (defaultConfig)
//  2. YAML file (CONFIG_PATH, ./config.yaml, /etc/curator/config.yaml)
//  3. Environment variables (CURATOR_* prefix)
//
// # Example config.yaml
//
//	server:
//	  host: 0.0.0.0
//	  port: 8385
//	  timeout: 30s
//	logging:
//	  level: info
//	  format: json
//	ranker:
//	  seed: 42
//	audit:
//	  backend: sqlite
//	  path: /data/curator-audit.db
//	rules:
//	  seed_defaults: true
//	  path: /etc/curator/rules.yaml
//
// # Environment variables
//
// Every setting has a CURATOR_* environment override, e.g. CURATOR_HTTP_PORT,
// CURATOR_LOG_LEVEL, CURATOR_AUDIT_BACKEND, CURATOR_RANKER_SEED. Unknown
// environment variables are ignored rather than mapped blindly.
//
// Load returns a validated *Config; validation failures name the offending
// key and are fatal at startup, never at request time.
package config
