// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/iarecomend/curator/internal/audit"
)

// ListAudit handles GET /api/v1/audit. Entries come back newest first.
// Filters: action_type (comma-separated), actor, q (substring search),
// limit, offset.
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	filter, ok := h.auditFilterFromQuery(rw, r)
	if !ok {
		return
	}

	recorder := h.workflow.Audit()
	entries, err := recorder.Query(r.Context(), filter)
	if err != nil {
		rw.InternalError("audit query failed")
		return
	}
	total, err := recorder.Count(r.Context(), filter)
	if err != nil {
		rw.InternalError("audit query failed")
		return
	}

	rw.SuccessWithPagination(entries, &PaginationMeta{
		Total:   total,
		Count:   len(entries),
		Offset:  filter.Offset,
		Limit:   filter.Limit,
		HasMore: int64(filter.Offset+len(entries)) < total,
	})
}

func (h *Handler) auditFilterFromQuery(rw *ResponseWriter, r *http.Request) (audit.QueryFilter, bool) {
	q := r.URL.Query()

	filter := audit.QueryFilter{
		Actor:      q.Get("actor"),
		SearchText: q.Get("q"),
		Limit:      h.cfg.API.DefaultPageSize,
	}

	if raw := q.Get("action_type"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			action := audit.ActionType(strings.TrimSpace(part))
			if !action.Valid() {
				rw.BadRequest("unknown action type: " + string(action))
				return filter, false
			}
			filter.ActionTypes = append(filter.ActionTypes, action)
		}
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			rw.BadRequest("limit must be a positive integer")
			return filter, false
		}
		if limit > h.cfg.API.MaxPageSize {
			limit = h.cfg.API.MaxPageSize
		}
		filter.Limit = limit
	}

	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			rw.BadRequest("offset must be a non-negative integer")
			return filter, false
		}
		filter.Offset = offset
	}

	return filter, true
}
