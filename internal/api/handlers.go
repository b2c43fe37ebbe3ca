// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/iarecomend/curator/internal/catalog"
	"github.com/iarecomend/curator/internal/config"
	"github.com/iarecomend/curator/internal/curation"
	"github.com/iarecomend/curator/internal/rules"
	"github.com/iarecomend/curator/internal/validation"
)

// reviewerHeader identifies the acting reviewer. Requests without it act
// as "anonymous"; there is no authentication layer in front of this API.
const reviewerHeader = "X-Reviewer"

const defaultActor = "anonymous"

// Handler holds the dependencies shared by all endpoint handlers.
type Handler struct {
	cfg        *config.Config
	workflow   *curation.Workflow
	selections *curation.SelectionSet
}

// NewHandler creates the API handler set.
func NewHandler(cfg *config.Config, workflow *curation.Workflow, selections *curation.SelectionSet) *Handler {
	return &Handler{
		cfg:        cfg,
		workflow:   workflow,
		selections: selections,
	}
}

// actor resolves the acting reviewer from request headers.
func actor(r *http.Request) string {
	if v := r.Header.Get(reviewerHeader); v != "" {
		return v
	}
	return defaultActor
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation. It writes the error response itself and reports whether the
// handler should continue.
func decodeAndValidate(rw *ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("invalid JSON body: " + err.Error())
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// writeDomainError maps workflow errors onto HTTP statuses.
func writeDomainError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, curation.ErrItemNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, curation.ErrInvalidTransition):
		rw.Conflict(err.Error())
	case errors.Is(err, curation.ErrMalformedInput):
		rw.BadRequest(err.Error())
	case errors.Is(err, catalog.ErrCustomerNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, rules.ErrRuleNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, rules.ErrRuleExists):
		rw.Conflict(err.Error())
	default:
		rw.InternalError("internal error")
	}
}

// GenerateRecommendations handles POST /api/v1/recommendations/generate.
func (h *Handler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SurfaceRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	items, err := h.workflow.Surface(r.Context(), req.CustomerID, req.AgentRef, req.DesiredCount)
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Created(items)
}

// listFilterFromQuery builds the item filter from query parameters.
func listFilterFromQuery(r *http.Request) (curation.ListFilter, error) {
	filter := curation.ListFilter{
		Search: r.URL.Query().Get("q"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := curation.Status(s)
		if !status.Valid() {
			return filter, errors.New("unknown status: " + s)
		}
		filter.Status = status
	}
	return filter, nil
}

// ListItems handles GET /api/v1/curation/items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	filter, err := listFilterFromQuery(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	items := h.workflow.List(filter)
	rw.SuccessWithPagination(items, &PaginationMeta{
		Total: int64(len(items)),
		Count: len(items),
	})
}

// GetItem handles GET /api/v1/curation/items/{id}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	item, err := h.workflow.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(item)
}

// ApproveItem handles POST /api/v1/curation/items/{id}/approve.
func (h *Handler) ApproveItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	item, err := h.workflow.Approve(r.Context(), chi.URLParam(r, "id"), actor(r))
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(item)
}

// RejectItem handles POST /api/v1/curation/items/{id}/reject.
func (h *Handler) RejectItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	item, err := h.workflow.Reject(r.Context(), chi.URLParam(r, "id"), actor(r))
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(item)
}

// EditItem handles PATCH /api/v1/curation/items/{id}.
func (h *Handler) EditItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req EditItemRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	item, err := h.workflow.Edit(r.Context(), chi.URLParam(r, "id"), actor(r), curation.EditRequest{
		Price:                req.Price,
		Rationale:            req.Rationale,
		RecommendedProductID: req.RecommendedProductID,
	})
	if err != nil {
		writeDomainError(rw, err)
		return
	}
	rw.Success(item)
}

// BatchApprove handles POST /api/v1/curation/batch/approve.
func (h *Handler) BatchApprove(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, h.workflow.ApproveBatch)
}

// BatchReject handles POST /api/v1/curation/batch/reject.
func (h *Handler) BatchReject(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, h.workflow.RejectBatch)
}

// batchResponse reports the per-item outcomes of a bulk operation.
type batchResponse struct {
	Outcomes  []curation.BatchOutcome `json:"outcomes"`
	Succeeded int                     `json:"succeeded"`
	Failed    int                     `json:"failed"`
}

func (h *Handler) batch(w http.ResponseWriter, r *http.Request, run func(ctx context.Context, ids []string, actor string) []curation.BatchOutcome) {
	rw := NewResponseWriter(w, r)

	var req BatchRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	outcomes := run(r.Context(), req.IDs, actor(r))

	resp := batchResponse{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	rw.Success(resp)
}

// CurationStats handles GET /api/v1/curation/stats.
func (h *Handler) CurationStats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.workflow.Stats())
}
