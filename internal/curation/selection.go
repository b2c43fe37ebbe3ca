// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package curation

import (
	"sort"
	"sync"
)

// Selection is a reviewer's working set of item ids. It is UI state, not
// persisted domain state: transitions consume the ids but never depend on
// the selection surviving them.
type Selection struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// SelectionSet keys selections by reviewer so concurrent reviewers never
// see or clobber each other's working sets.
type SelectionSet struct {
	mu         sync.Mutex
	byReviewer map[string]*Selection
}

// NewSelectionSet creates an empty selection set.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{byReviewer: make(map[string]*Selection)}
}

// For returns the reviewer's selection, creating it on first use.
func (s *SelectionSet) For(reviewer string) *Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel, ok := s.byReviewer[reviewer]
	if !ok {
		sel = NewSelection()
		s.byReviewer[reviewer] = sel
	}
	return sel
}

// Toggle adds the id if absent, removes it if present, and returns whether
// the id is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Has reports whether the id is selected.
func (s *Selection) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// ToggleAll sets the selection to exactly the filtered id set, unless it
// already equals it, in which case the selection is cleared. Idempotent
// with respect to the current filter, not cumulative across filters.
func (s *Selection) ToggleAll(filtered []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.equalsLocked(filtered) {
		s.ids = make(map[string]struct{})
		return
	}
	s.ids = make(map[string]struct{}, len(filtered))
	for _, id := range filtered {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
}

// IDs returns the selected ids sorted ascending.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Selection) equalsLocked(filtered []string) bool {
	if len(s.ids) != len(filtered) {
		return false
	}
	for _, id := range filtered {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}
