// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Pure-Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite for durable audit storage.
// The engine core treats audit collections as in-memory; this store is the
// embedding application's durability layer for deployments that need the
// trail to survive restarts.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the audit database at path
// and ensures the schema exists. Use ":memory:" for an ephemeral database.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit database %s: %w", path, err)
	}

	// SQLite allows one writer; avoid database-locked errors under
	// concurrent transitions.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.createTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// createTable creates the audit_entries table if it doesn't exist.
func (s *SQLiteStore) createTable(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS audit_entries (
			id TEXT PRIMARY KEY,
			action_type TEXT NOT NULL,
			actor TEXT NOT NULL,
			target_description TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_entries(timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_action_type ON audit_entries(action_type)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_actor ON audit_entries(actor)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create audit schema: %w", err)
		}
	}
	return nil
}

// Record appends an entry.
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_entries (id, action_type, actor, target_description, timestamp, details)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		string(entry.ActionType),
		entry.Actor,
		entry.TargetDescription,
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
		entry.Details,
	)
	if err != nil {
		return fmt.Errorf("record audit entry %s: %w", entry.ID, err)
	}
	return nil
}

// Query returns entries matching the filter, newest first.
func (s *SQLiteStore) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	where, args := buildWhere(&filter)

	query := `SELECT id, action_type, actor, target_description, timestamp, details
		FROM audit_entries` + where + ` ORDER BY timestamp DESC, id DESC`

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	} else if filter.Offset > 0 {
		// SQLite requires LIMIT before OFFSET; -1 means unlimited.
		query += " LIMIT -1 OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var actionType, timestamp string
		if err := rows.Scan(&e.ID, &actionType, &e.Actor, &e.TargetDescription, &timestamp, &e.Details); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.ActionType = ActionType(actionType)
		e.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, fmt.Errorf("parse audit timestamp %q: %w", timestamp, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of entries matching the filter, ignoring
// limit and offset.
func (s *SQLiteStore) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	where, args := buildWhere(&filter)

	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_entries"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count audit entries: %w", err)
	}
	return count, nil
}

// buildWhere translates the filter into a WHERE clause and its arguments.
func buildWhere(filter *QueryFilter) (string, []any) {
	var conditions []string
	var args []any

	if len(filter.ActionTypes) > 0 {
		placeholders := make([]string, len(filter.ActionTypes))
		for i, t := range filter.ActionTypes {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		conditions = append(conditions, fmt.Sprintf("action_type IN (%s)", strings.Join(placeholders, ",")))
	}

	if filter.Actor != "" {
		conditions = append(conditions, "actor = ?")
		args = append(args, filter.Actor)
	}

	if filter.SearchText != "" {
		needle := "%" + strings.ToLower(filter.SearchText) + "%"
		conditions = append(conditions,
			"(lower(target_description) LIKE ? OR lower(actor) LIKE ? OR lower(details) LIKE ?)")
		args = append(args, needle, needle, needle)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
