// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package audit

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore implements Store in memory. It is the default backend;
// entries are lost on restart. Durable storage is the embedding
// application's concern (see SQLiteStore).
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	maxLen  int
}

// NewMemoryStore creates an in-memory audit store holding at most maxLen
// entries; the oldest tenth is dropped when the cap is reached.
func NewMemoryStore(maxLen int) *MemoryStore {
	if maxLen <= 0 {
		maxLen = 10000
	}
	return &MemoryStore{
		entries: make([]Entry, 0, maxLen),
		maxLen:  maxLen,
	}
}

// Record appends an entry.
func (s *MemoryStore) Record(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.maxLen {
		removeCount := s.maxLen / 10
		if removeCount == 0 {
			removeCount = 1
		}
		s.entries = s.entries[removeCount:]
	}

	s.entries = append(s.entries, *entry)
	return nil
}

// Query returns entries matching the filter, newest first.
func (s *MemoryStore) Query(_ context.Context, filter QueryFilter) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]Entry, 0)
	skipped := 0

	// Reverse iteration yields newest-first without a sort.
	for i := len(s.entries) - 1; i >= 0; i-- {
		entry := s.entries[i]
		if !matchesFilter(&entry, &filter) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		results = append(results, entry)
		if filter.Limit > 0 && len(results) >= filter.Limit {
			break
		}
	}

	return results, nil
}

// Count returns the number of entries matching the filter, ignoring
// limit and offset.
func (s *MemoryStore) Count(_ context.Context, filter QueryFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for i := range s.entries {
		if matchesFilter(&s.entries[i], &filter) {
			count++
		}
	}
	return count, nil
}

// matchesFilter returns true if the entry matches all filter criteria,
// disregarding limit and offset.
func matchesFilter(entry *Entry, filter *QueryFilter) bool {
	if len(filter.ActionTypes) > 0 {
		found := false
		for _, t := range filter.ActionTypes {
			if entry.ActionType == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if filter.Actor != "" && entry.Actor != filter.Actor {
		return false
	}

	if filter.SearchText != "" {
		needle := strings.ToLower(filter.SearchText)
		if !strings.Contains(strings.ToLower(entry.TargetDescription), needle) &&
			!strings.Contains(strings.ToLower(entry.Actor), needle) &&
			!strings.Contains(strings.ToLower(entry.Details), needle) {
			return false
		}
	}

	return true
}
