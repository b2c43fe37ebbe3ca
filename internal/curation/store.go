// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package curation

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// storedItem pairs an item with its own lock so transitions are atomic
// per item without a global write lock.
type storedItem struct {
	mu   sync.Mutex
	item Item
}

// Store holds curation items in memory. The map lock guards membership;
// each item's lock guards its fields. Status transitions are
// compare-and-set: the precondition check and the mutation happen under
// the same item lock.
type Store struct {
	mu    sync.RWMutex
	items map[string]*storedItem
}

// NewStore creates an empty item store.
func NewStore() *Store {
	return &Store{items: make(map[string]*storedItem)}
}

// Insert adds a new item. The id must not already exist.
func (s *Store) Insert(item Item) error {
	if item.ID == "" {
		return fmt.Errorf("%w: empty item id", ErrMalformedInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; exists {
		return fmt.Errorf("insert item %s: id already exists", item.ID)
	}
	s.items[item.ID] = &storedItem{item: item}
	return nil
}

// Get returns a copy of the item.
func (s *Store) Get(id string) (Item, error) {
	s.mu.RLock()
	stored, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	stored.mu.Lock()
	defer stored.mu.Unlock()
	return copyItem(&stored.item), nil
}

// List returns copies of all items matching the filter, ordered by
// creation time descending then id ascending.
func (s *Store) List(filter ListFilter) []Item {
	s.mu.RLock()
	stored := make([]*storedItem, 0, len(s.items))
	for _, si := range s.items {
		stored = append(stored, si)
	}
	s.mu.RUnlock()

	results := make([]Item, 0, len(stored))
	for _, si := range stored {
		si.mu.Lock()
		item := copyItem(&si.item)
		si.mu.Unlock()
		if matchesListFilter(&item, &filter) {
			results = append(results, item)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].ID < results[j].ID
	})
	return results
}

// Transition atomically moves the item from Pending to the given terminal
// status. Returns ErrItemNotFound for unknown ids and ErrInvalidTransition
// when the item is not Pending; the item is left unchanged on failure.
func (s *Store) Transition(id string, to Status) (Item, error) {
	if !to.Terminal() {
		return Item{}, fmt.Errorf("%w: cannot transition to %s", ErrInvalidTransition, to)
	}

	s.mu.RLock()
	stored, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	stored.mu.Lock()
	defer stored.mu.Unlock()

	if stored.item.Status != StatusPending {
		return Item{}, fmt.Errorf("%w: item %s is %s", ErrInvalidTransition, id, stored.item.Status)
	}
	stored.item.Status = to
	return copyItem(&stored.item), nil
}

// UpdatePending applies mutate to the item while it is Pending, under the
// item lock. Returns ErrInvalidTransition when the item is terminal; if
// mutate returns an error the item is left unchanged.
func (s *Store) UpdatePending(id string, mutate func(*Item) error) (Item, error) {
	s.mu.RLock()
	stored, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	stored.mu.Lock()
	defer stored.mu.Unlock()

	if stored.item.Status != StatusPending {
		return Item{}, fmt.Errorf("%w: item %s is %s", ErrInvalidTransition, id, stored.item.Status)
	}

	draft := copyItem(&stored.item)
	if err := mutate(&draft); err != nil {
		return Item{}, err
	}
	// Status and confidence are not edit-mutable.
	draft.Status = stored.item.Status
	draft.Confidence = stored.item.Confidence
	stored.item = draft
	return copyItem(&stored.item), nil
}

// Stats counts items by status.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	stored := make([]*storedItem, 0, len(s.items))
	for _, si := range s.items {
		stored = append(stored, si)
	}
	s.mu.RUnlock()

	var stats Stats
	for _, si := range stored {
		si.mu.Lock()
		status := si.item.Status
		si.mu.Unlock()

		switch status {
		case StatusPending:
			stats.Pending++
		case StatusApproved:
			stats.Approved++
		case StatusRejected:
			stats.Rejected++
		}
		stats.Total++
	}
	return stats
}

// copyItem deep-copies the item so callers never alias stored state.
func copyItem(item *Item) Item {
	out := *item
	if item.RuleViolations != nil {
		out.RuleViolations = make([]string, len(item.RuleViolations))
		copy(out.RuleViolations, item.RuleViolations)
	}
	return out
}

// matchesListFilter applies the status filter and the case-insensitive
// substring search over customer, recommended product, and agent,
// AND-combined.
func matchesListFilter(item *Item, filter *ListFilter) bool {
	if filter.Status != "" && item.Status != filter.Status {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(item.CustomerRef), needle) &&
			!strings.Contains(strings.ToLower(item.RecommendedProduct.Name), needle) &&
			!strings.Contains(strings.ToLower(item.AgentRef), needle) {
			return false
		}
	}
	return true
}
