// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

// Package middleware provides HTTP middleware for the API server.
//
// Provided middleware, in the order the router applies them:
//
//   - RequestID: per-request UUID, propagated into the logging context
//     and echoed in the X-Request-ID response header
//   - PrometheusMetrics: request count, latency, and in-flight gauge,
//     labeled by chi route pattern to keep metric cardinality bounded
//   - Compression: gzip response encoding for accepting clients
//
// Rate limiting and CORS come from go-chi/httprate and go-chi/cors and
// are configured directly in the router.
package middleware
