// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iarecomend/curator/internal/rules"
)

// ListRules handles GET /api/v1/rules.
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.workflow.Rules())
}

// CreateRule handles POST /api/v1/rules. Adding an active rule triggers a
// re-evaluation of all pending items.
func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req CreateRuleRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	rule := rules.BusinessRule{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Type:        rules.Type(req.Type),
		Active:      true,
		Parameters:  req.Parameters,
		CreatedAt:   time.Now().UTC(),
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	if err := h.workflow.AddRule(r.Context(), rule); err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Created(rule)
}

// ToggleRule handles POST /api/v1/rules/{id}/toggle.
func (h *Handler) ToggleRule(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	active, err := h.workflow.ToggleRule(r.Context(), id)
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(map[string]interface{}{
		"id":     id,
		"active": active,
	})
}

// DeleteRule handles DELETE /api/v1/rules/{id}.
func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if err := h.workflow.RemoveRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.NoContent()
}
