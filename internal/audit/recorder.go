// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iarecomend/curator/internal/logging"
	"github.com/iarecomend/curator/internal/metrics"
)

// Recorder writes audit entries for curation actions. All writes are
// synchronous: a transition is not acknowledged to its caller until the
// entry is in the store. By the time the store call fails the domain
// mutation has already happened, so a failed write is logged and the
// entry is dropped rather than the action being reversed.
type Recorder struct {
	store Store
}

// NewRecorder creates a recorder backed by the given store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record finalizes and persists an entry, assigning an ID and timestamp
// when the caller left them zero.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	if err := r.store.Record(ctx, &entry); err != nil {
		metrics.AuditWrites.WithLabelValues(string(entry.ActionType), "error").Inc()
		logging.Ctx(ctx).Error().
			Err(err).
			Str("action_type", string(entry.ActionType)).
			Str("actor", entry.Actor).
			Msg("Failed to record audit entry")
		return
	}

	metrics.AuditWrites.WithLabelValues(string(entry.ActionType), "success").Inc()
	logging.Ctx(ctx).Debug().
		Str("audit_id", entry.ID).
		Str("action_type", string(entry.ActionType)).
		Str("actor", entry.Actor).
		Str("target", entry.TargetDescription).
		Msg("Audit entry recorded")
}

// RecordAction is a convenience wrapper for single-item actions.
func (r *Recorder) RecordAction(ctx context.Context, action ActionType, actor, target, details string) {
	r.Record(ctx, Entry{
		ActionType:        action,
		Actor:             actor,
		TargetDescription: target,
		Details:           details,
	})
}

// Query delegates to the underlying store.
func (r *Recorder) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	return r.store.Query(ctx, filter)
}

// Count delegates to the underlying store.
func (r *Recorder) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	return r.store.Count(ctx, filter)
}
