// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

// Package main is the entry point for the Curator server.
//
// Curator ranks catalog products for customers, runs the candidates through
// the business rule engine, and exposes a curation workflow where reviewers
// approve, reject, or edit the pending recommendations. Every decision is
// written to an append-only audit log.
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config file, environment variables (Koanf v2)
//  2. Logging: zerolog, configured from the logging section
//  3. Catalog: in-memory product and customer providers
//  4. Rules: registry seeded from defaults and/or a rules file
//  5. Audit: in-memory or SQLite-backed store
//  6. Workflow and HTTP server
//
// Shutdown on SIGINT/SIGTERM is graceful: the server stops accepting
// connections, waits for in-flight requests, then closes the audit store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iarecomend/curator/internal/api"
	"github.com/iarecomend/curator/internal/audit"
	"github.com/iarecomend/curator/internal/catalog"
	"github.com/iarecomend/curator/internal/config"
	"github.com/iarecomend/curator/internal/curation"
	"github.com/iarecomend/curator/internal/logging"
	"github.com/iarecomend/curator/internal/recommend"
	"github.com/iarecomend/curator/internal/rules"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Int("port", cfg.Server.Port).
		Msg("Starting Curator")

	provider := buildCatalog(cfg)

	registry, err := buildRegistry(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load business rules")
	}

	auditStore, closeAudit, err := buildAuditStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open audit store")
	}
	defer closeAudit()

	ranker, err := recommend.NewRanker(&cfg.Ranker, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create ranker")
	}

	workflow := curation.NewWorkflow(
		curation.NewStore(),
		ranker,
		rules.NewEngine(registry, logger),
		audit.NewRecorder(auditStore),
		provider,
		provider,
		logger,
	)

	handler := api.NewHandler(cfg, workflow, curation.NewSelectionSet())
	router := api.NewRouter(cfg, handler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	} else {
		logging.Info().Msg("Server stopped")
	}
}

// buildCatalog constructs the catalog and profile provider. The seed data
// is a small demo catalog; disabling it starts the service empty.
func buildCatalog(cfg *config.Config) *catalog.MemoryProvider {
	if cfg.Catalog.SeedData {
		return catalog.NewMemoryProvider(catalog.SeedProducts(), catalog.SeedCustomers())
	}
	return catalog.NewMemoryProvider(nil, nil)
}

// buildRegistry assembles the rule registry from the seed set and an
// optional rules file. File rules win on id collision with the seeds.
func buildRegistry(cfg *config.Config) (*rules.Registry, error) {
	registry := rules.NewRegistry()

	if cfg.Rules.SeedDefaults {
		for _, rule := range rules.SeedRules() {
			if err := registry.Add(rule); err != nil {
				return nil, err
			}
		}
	}

	if cfg.Rules.Path != "" {
		loaded, err := rules.LoadFile(cfg.Rules.Path)
		if err != nil {
			return nil, err
		}
		for _, rule := range loaded {
			if err := registry.Remove(rule.ID); err != nil && !errors.Is(err, rules.ErrRuleNotFound) {
				return nil, err
			}
			if err := registry.Add(rule); err != nil {
				return nil, err
			}
		}
		logging.Info().Str("path", cfg.Rules.Path).Int("rules", len(loaded)).Msg("Loaded rules file")
	}

	return registry, nil
}

// buildAuditStore opens the configured audit backend.
func buildAuditStore(cfg *config.Config) (audit.Store, func(), error) {
	switch cfg.Audit.Backend {
	case "sqlite":
		store, err := audit.OpenSQLiteStore(context.Background(), cfg.Audit.Path)
		if err != nil {
			return nil, nil, err
		}
		logging.Info().Str("path", cfg.Audit.Path).Msg("Audit log backed by SQLite")
		return store, func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Failed to close audit store")
			}
		}, nil
	default:
		return audit.NewMemoryStore(cfg.Audit.MaxEntries), func() {}, nil
	}
}
