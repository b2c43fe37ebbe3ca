// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with custom validators and user-friendly error
// messages. It integrates with the API error envelope for consistent
// error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Error translation to human-readable messages
//   - APIError conversion matching the API's error format
//   - A custom "ruletype" validator for the five business rule kinds
//
// # Quick Start
//
//	type SurfaceRequest struct {
//	    CustomerID   string `validate:"required"`
//	    AgentRef     string `validate:"required,max=100"`
//	    DesiredCount int    `validate:"min=6,max=8"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req SurfaceRequest
//	    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	        respondError(w, http.StatusBadRequest, "INVALID_JSON", err.Error(), nil)
//	        return
//	    }
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	        return
//	    }
//	}
//
// # Validation Tags
//
// Commonly used tags in this codebase:
//   - required: field must be non-zero
//   - min=6,max=8: desiredCount bounds for ranking requests
//   - gte=0: non-negative prices on edits
//   - oneof=pending approved rejected: status filters
//   - ruletype: one of price_deviation, min_confidence, category_match,
//     stock_threshold, custom
//
// The singleton caches struct metadata after the first validation of each
// type, so repeated validations of request structs are cheap.
package validation
