// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package api

import (
	"net/http"
)

// selectionResponse is the current selection state.
type selectionResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

// GetSelection handles GET /api/v1/curation/selection. Selections are
// per reviewer: each X-Reviewer identity has its own working set.
func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	selection := h.selections.For(actor(r))
	NewResponseWriter(w, r).Success(selectionResponse{
		IDs:   selection.IDs(),
		Count: selection.Count(),
	})
}

// ToggleSelection handles POST /api/v1/curation/selection/toggle.
func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SelectionToggleRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	// The selection only ever references real items.
	if _, err := h.workflow.Get(req.ID); err != nil {
		writeDomainError(rw, err)
		return
	}

	selection := h.selections.For(actor(r))
	selected := selection.Toggle(req.ID)
	rw.Success(map[string]interface{}{
		"id":       req.ID,
		"selected": selected,
		"count":    selection.Count(),
	})
}

// SelectAll handles POST /api/v1/curation/selection/select-all. It operates
// on the currently filtered view: selecting all twice with the same filter
// clears the selection, while a different filter replaces it.
func (h *Handler) SelectAll(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	filter, err := listFilterFromQuery(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	items := h.workflow.List(filter)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	selection := h.selections.For(actor(r))
	selection.ToggleAll(ids)

	rw.Success(selectionResponse{
		IDs:   selection.IDs(),
		Count: selection.Count(),
	})
}

// ClearSelection handles DELETE /api/v1/curation/selection.
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.selections.For(actor(r)).Clear()
	NewResponseWriter(w, r).NoContent()
}
