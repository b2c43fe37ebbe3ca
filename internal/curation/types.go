// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package curation

import (
	"fmt"
	"time"

	"github.com/iarecomend/curator/internal/catalog"
)

// Status is the review state of a curation item.
type Status string

const (
	// StatusPending means the item awaits review.
	StatusPending Status = "pending"

	// StatusApproved is terminal: the recommendation was accepted.
	StatusApproved Status = "approved"

	// StatusRejected is terminal: the recommendation was declined.
	StatusRejected Status = "rejected"
)

// Valid reports whether the status is one of the three known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Workflow errors. All are recoverable at the call site; none is fatal to
// the process.
var (
	// ErrItemNotFound indicates an operation referenced an unknown item id.
	ErrItemNotFound = fmt.Errorf("curation item not found")

	// ErrInvalidTransition indicates a status precondition was violated:
	// the item was not Pending when a transition or edit was attempted.
	ErrInvalidTransition = fmt.Errorf("invalid transition")

	// ErrMalformedInput indicates a request field failed validation, such
	// as a negative price on edit.
	ErrMalformedInput = fmt.Errorf("malformed input")
)

// Item is the unit a human reviews. Created Pending by the workflow when a
// candidate is surfaced; reviewers may edit fields or transition the
// status. Once terminal, no further mutation is permitted.
type Item struct {
	// ID is a unique identifier for this item.
	ID string `json:"id"`

	// CustomerRef names the customer the recommendation targets.
	CustomerRef string `json:"customer_ref"`

	// AgentRef names the salesperson handling the customer.
	AgentRef string `json:"agent_ref"`

	// SourceProduct is what the customer originally had or considered.
	SourceProduct catalog.Product `json:"source_product"`

	// RecommendedProduct is the reviewer-mutable copy of the candidate's
	// product choice.
	RecommendedProduct catalog.Product `json:"recommended_product"`

	// Confidence is copied from the candidate and read-only thereafter.
	Confidence float64 `json:"confidence"`

	// Category is the recommended product's category label.
	Category string `json:"category"`

	// Price defaults to RecommendedProduct.BasePrice and is
	// reviewer-mutable while Pending.
	Price float64 `json:"price"`

	// Rationale is the human-readable justification, reviewer-mutable.
	Rationale string `json:"rationale"`

	// Status is the review state.
	Status Status `json:"status"`

	// CreatedAt is when the item was surfaced for review.
	CreatedAt time.Time `json:"created_at"`

	// RuleViolations holds the ids of rules the item currently fails,
	// sorted ascending. Advisory only; violations never block a
	// transition.
	RuleViolations []string `json:"rule_violations"`
}

// EditRequest carries the reviewer-editable fields. Nil fields are left
// unchanged.
type EditRequest struct {
	// Price replaces the item price. Must be >= 0.
	Price *float64 `json:"price,omitempty"`

	// Rationale replaces the justification text.
	Rationale *string `json:"rationale,omitempty"`

	// RecommendedProductID swaps the recommended product for another
	// catalog product; category follows the new product, and price resets
	// to its base price unless Price is also given.
	RecommendedProductID *string `json:"recommended_product_id,omitempty"`
}

// BatchOutcome reports one id's result within a batch operation.
type BatchOutcome struct {
	// ItemID is the id the outcome refers to.
	ItemID string `json:"item_id"`

	// Success is true when the transition was applied.
	Success bool `json:"success"`

	// Error describes the failure when Success is false, e.g.
	// "invalid transition" or "curation item not found".
	Error string `json:"error,omitempty"`
}

// ListFilter narrows a listing. The zero value matches everything.
type ListFilter struct {
	// Status restricts results to items in the given state when non-empty.
	Status Status

	// Search is a case-insensitive substring match applied to the
	// customer, recommended product name, and agent fields; a result must
	// match the status filter and the search text.
	Search string
}

// Stats summarizes the item population by status.
type Stats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}
