// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package api

import (
	"net/http"

	"github.com/iarecomend/curator/internal/audit"
)

// Live handles GET /api/v1/health/live. It answers as long as the process
// is serving requests.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// Ready handles GET /api/v1/health/ready. The service is ready when the
// audit store answers queries; everything else is in-memory.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if _, err := h.workflow.Audit().Count(r.Context(), audit.QueryFilter{Limit: 1}); err != nil {
		rw.ServiceUnavailable("audit store unavailable")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}
