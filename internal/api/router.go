// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iarecomend/curator/internal/config"
	"github.com/iarecomend/curator/internal/middleware"
)

// healthRateLimit is the permissive per-IP limit for health probes, kept
// separate from the configurable API limit so monitoring never starves.
const healthRateLimit = 1000

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	cfg     *config.Config
	handler *Handler
}

// NewRouter creates the router for the given handler set.
func NewRouter(cfg *config.Config, handler *Handler) *Router {
	return &Router{
		cfg:     cfg,
		handler: handler,
	}
}

// Setup builds the full route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.corsMiddleware()) // global so OPTIONS preflight always answers

	// Health endpoints get a permissive rate limit of their own.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.Limit(healthRateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Get("/live", router.handler.Live)
		r.Get("/ready", router.handler.Ready)
	})

	// Prometheus scrape endpoint, outside the API rate limit.
	r.Handle("/metrics", promhttp.Handler())

	// Core API endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.Limit(
			router.cfg.API.RateLimitRequests,
			router.cfg.API.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Post("/recommendations/generate", router.handler.GenerateRecommendations)

		r.Route("/curation", func(r chi.Router) {
			r.Get("/stats", router.handler.CurationStats)

			r.Route("/items", func(r chi.Router) {
				r.Get("/", router.handler.ListItems)
				r.Get("/{id}", router.handler.GetItem)
				r.Patch("/{id}", router.handler.EditItem)
				r.Post("/{id}/approve", router.handler.ApproveItem)
				r.Post("/{id}/reject", router.handler.RejectItem)
			})

			r.Route("/batch", func(r chi.Router) {
				r.Post("/approve", router.handler.BatchApprove)
				r.Post("/reject", router.handler.BatchReject)
			})

			r.Route("/selection", func(r chi.Router) {
				r.Get("/", router.handler.GetSelection)
				r.Delete("/", router.handler.ClearSelection)
				r.Post("/toggle", router.handler.ToggleSelection)
				r.Post("/select-all", router.handler.SelectAll)
			})
		})

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", router.handler.ListRules)
			r.Post("/", router.handler.CreateRule)
			r.Post("/{id}/toggle", router.handler.ToggleRule)
			r.Delete("/{id}", router.handler.DeleteRule)
		})

		r.Get("/audit", router.handler.ListAudit)
	})

	return r
}

// corsMiddleware builds the CORS handler from configured origins.
func (router *Router) corsMiddleware() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.API.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Reviewer"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
