// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

// Package audit provides the append-only audit trail for the curation
// workflow. Every approval, rejection, and edit produces exactly one entry;
// entries are never updated or deleted.
package audit

import (
	"context"
	"time"
)

// ActionType categorizes audit entries.
type ActionType string

const (
	ActionApproval       ActionType = "approval"
	ActionRejection      ActionType = "rejection"
	ActionEdit           ActionType = "edit"
	ActionBatchApproval  ActionType = "batch_approval"
	ActionBatchRejection ActionType = "batch_rejection"
)

// Valid reports whether the action type is one of the five known kinds.
func (a ActionType) Valid() bool {
	switch a {
	case ActionApproval, ActionRejection, ActionEdit, ActionBatchApproval, ActionBatchRejection:
		return true
	}
	return false
}

// Entry is one immutable audit record.
type Entry struct {
	// ID is a unique identifier for this entry.
	ID string `json:"id"`

	// ActionType categorizes the recorded action.
	ActionType ActionType `json:"action_type"`

	// Actor is who performed the action.
	Actor string `json:"actor"`

	// TargetDescription is a human-readable summary of the affected
	// item(s), e.g. "Samsung 1TB SSD for Pedro Oliveira".
	TargetDescription string `json:"target_description"`

	// Timestamp is when the action occurred.
	Timestamp time.Time `json:"timestamp"`

	// Details is free text with action-specific context.
	Details string `json:"details,omitempty"`
}

// QueryFilter narrows an audit query. The zero value matches everything.
type QueryFilter struct {
	// ActionTypes restricts results to the given types when non-empty.
	ActionTypes []ActionType

	// Actor restricts results to entries recorded by this actor.
	Actor string

	// SearchText is a case-insensitive substring match over target
	// description, actor, and details.
	SearchText string

	// Limit caps the number of results. Zero means no cap.
	Limit int

	// Offset skips the first N matching entries.
	Offset int
}

// DefaultQueryFilter returns a filter suitable for paginated listing.
func DefaultQueryFilter() QueryFilter {
	return QueryFilter{Limit: 100}
}

// Store defines audit entry persistence. Append-only: no update or delete
// operation exists.
type Store interface {
	// Record appends an entry.
	Record(ctx context.Context, entry *Entry) error

	// Query returns entries matching the filter, newest first.
	Query(ctx context.Context, filter QueryFilter) ([]Entry, error)

	// Count returns the number of entries matching the filter.
	Count(ctx context.Context, filter QueryFilter) (int64, error)
}
