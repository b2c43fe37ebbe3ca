// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package curation

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iarecomend/curator/internal/audit"
	"github.com/iarecomend/curator/internal/catalog"
	"github.com/iarecomend/curator/internal/logging"
	"github.com/iarecomend/curator/internal/recommend"
	"github.com/iarecomend/curator/internal/rules"
)

type testHarness struct {
	workflow *Workflow
	store    *Store
	registry *rules.Registry
	audit    *audit.MemoryStore
}

func newTestHarness(t *testing.T, seedRules []rules.BusinessRule) *testHarness {
	t.Helper()

	logger := logging.NewTestLogger(&bytes.Buffer{})

	ranker, err := recommend.NewRanker(recommend.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("NewRanker failed: %v", err)
	}

	registry := rules.NewRegistry()
	for _, r := range seedRules {
		if err := registry.Add(r); err != nil {
			t.Fatalf("Add rule failed: %v", err)
		}
	}

	auditStore := audit.NewMemoryStore(1000)
	provider := catalog.NewMemoryProvider(catalog.SeedProducts(), catalog.SeedCustomers())
	store := NewStore()

	return &testHarness{
		workflow: NewWorkflow(
			store,
			ranker,
			rules.NewEngine(registry, logger),
			audit.NewRecorder(auditStore),
			provider,
			provider,
			logger,
		),
		store:    store,
		registry: registry,
		audit:    auditStore,
	}
}

func (h *testHarness) surface(t *testing.T, customerID string, count int) []Item {
	t.Helper()
	items, err := h.workflow.Surface(context.Background(), customerID, "Maria Santos", count)
	if err != nil {
		t.Fatalf("Surface failed: %v", err)
	}
	return items
}

func (h *testHarness) auditCount(t *testing.T) int64 {
	t.Helper()
	count, err := h.audit.Count(context.Background(), audit.QueryFilter{})
	if err != nil {
		t.Fatalf("audit Count failed: %v", err)
	}
	return count
}

func TestSurfaceCreatesPendingItems(t *testing.T) {
	h := newTestHarness(t, rules.SeedRules())
	items := h.surface(t, "c01", 6)

	if len(items) != 6 {
		t.Fatalf("Expected 6 items, got %d", len(items))
	}
	for _, item := range items {
		if item.Status != StatusPending {
			t.Errorf("Item %s: expected pending, got %s", item.ID, item.Status)
		}
		if item.ID == "" || item.CreatedAt.IsZero() {
			t.Errorf("Item missing id or creation time: %+v", item)
		}
		if item.Price != item.RecommendedProduct.BasePrice {
			t.Errorf("Item %s: price should default to base price", item.ID)
		}
		if item.Confidence < recommend.MinConfidence || item.Confidence > recommend.MaxConfidence {
			t.Errorf("Item %s: confidence %f out of band", item.ID, item.Confidence)
		}
		if item.CustomerRef != "Joao Silva Santos" {
			t.Errorf("Expected customer name on item, got %s", item.CustomerRef)
		}
	}

	// Surfacing writes no audit entries; only transitions and edits do.
	if got := h.auditCount(t); got != 0 {
		t.Errorf("Expected 0 audit entries after surface, got %d", got)
	}
}

func TestSurfaceUnknownCustomer(t *testing.T) {
	h := newTestHarness(t, nil)
	_, err := h.workflow.Surface(context.Background(), "c99", "Maria Santos", 6)
	if !errors.Is(err, catalog.ErrCustomerNotFound) {
		t.Fatalf("Expected ErrCustomerNotFound, got %v", err)
	}
}

func TestSurfaceMalformedDesiredCount(t *testing.T) {
	h := newTestHarness(t, nil)
	for _, count := range []int{0, 5, 9, -1} {
		if _, err := h.workflow.Surface(context.Background(), "c01", "Maria Santos", count); !errors.Is(err, recommend.ErrMalformedInput) {
			t.Errorf("desiredCount=%d: expected ErrMalformedInput, got %v", count, err)
		}
	}
}

func TestApproveTransition(t *testing.T) {
	h := newTestHarness(t, nil)
	items := h.surface(t, "c01", 6)
	id := items[0].ID

	approved, err := h.workflow.Approve(context.Background(), id, "reviewer-1")
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Errorf("Expected approved, got %s", approved.Status)
	}

	if got := h.auditCount(t); got != 1 {
		t.Errorf("Expected 1 audit entry, got %d", got)
	}
	entries, err := h.audit.Query(context.Background(), audit.QueryFilter{})
	if err != nil {
		t.Fatalf("audit Query failed: %v", err)
	}
	if entries[0].ActionType != audit.ActionApproval {
		t.Errorf("Expected approval action, got %s", entries[0].ActionType)
	}
	if entries[0].Actor != "reviewer-1" {
		t.Errorf("Expected actor reviewer-1, got %s", entries[0].Actor)
	}
	if !strings.Contains(entries[0].TargetDescription, approved.RecommendedProduct.Name) {
		t.Errorf("Target description %q should name the product", entries[0].TargetDescription)
	}
}

func TestTransitionMonotonicity(t *testing.T) {
	h := newTestHarness(t, nil)
	items := h.surface(t, "c01", 6)
	ctx := context.Background()

	approvedID := items[0].ID
	rejectedID := items[1].ID
	if _, err := h.workflow.Approve(ctx, approvedID, "reviewer-1"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := h.workflow.Reject(ctx, rejectedID, "reviewer-1"); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	price := 10.0
	for _, id := range []string{approvedID, rejectedID} {
		if _, err := h.workflow.Approve(ctx, id, "reviewer-1"); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Approve on terminal item %s: expected ErrInvalidTransition, got %v", id, err)
		}
		if _, err := h.workflow.Reject(ctx, id, "reviewer-1"); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Reject on terminal item %s: expected ErrInvalidTransition, got %v", id, err)
		}
		if _, err := h.workflow.Edit(ctx, id, "reviewer-1", EditRequest{Price: &price}); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Edit on terminal item %s: expected ErrInvalidTransition, got %v", id, err)
		}
	}

	// Terminal items are unchanged by the failed attempts.
	got, err := h.workflow.Get(approvedID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != StatusApproved || got.Price == price {
		t.Errorf("Terminal item mutated by failed attempt: %+v", got)
	}

	// Exactly 2 entries: the two successful transitions.
	if count := h.auditCount(t); count != 2 {
		t.Errorf("Expected 2 audit entries, got %d", count)
	}
}

func TestTransitionUnknownItem(t *testing.T) {
	h := newTestHarness(t, nil)
	if _, err := h.workflow.Approve(context.Background(), "no-such-id", "reviewer-1"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestEditRerunsRules(t *testing.T) {
	h := newTestHarness(t, rules.SeedRules())
	items := h.surface(t, "c01", 6)
	ctx := context.Background()

	// Find an item with no price deviation violation and push its price
	// far above the source base price.
	target := items[0]
	price := target.SourceProduct.BasePrice * 2
	edited, err := h.workflow.Edit(ctx, target.ID, "reviewer-1", EditRequest{Price: &price})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if edited.Price != price {
		t.Errorf("Expected price %v, got %v", price, edited.Price)
	}

	found := false
	for _, id := range edited.RuleViolations {
		if id == "rule-price-deviation" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected price deviation violation after edit, got %v", edited.RuleViolations)
	}

	if count := h.auditCount(t); count != 1 {
		t.Errorf("Expected 1 audit entry for the edit, got %d", count)
	}
}

func TestEditNegativePrice(t *testing.T) {
	h := newTestHarness(t, nil)
	items := h.surface(t, "c01", 6)

	price := -1.0
	_, err := h.workflow.Edit(context.Background(), items[0].ID, "reviewer-1", EditRequest{Price: &price})
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("Expected ErrMalformedInput, got %v", err)
	}

	// The item is unchanged and no audit entry was written.
	got, err := h.workflow.Get(items[0].ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Price != items[0].Price {
		t.Errorf("Item price changed by rejected edit")
	}
	if count := h.auditCount(t); count != 0 {
		t.Errorf("Expected 0 audit entries, got %d", count)
	}
}

func TestEditSwapsRecommendedProduct(t *testing.T) {
	h := newTestHarness(t, nil)
	items := h.surface(t, "c01", 6)

	// Swap to a known catalog product different from the current one.
	newID := "p01"
	if items[0].RecommendedProduct.ID == "p01" {
		newID = "p02"
	}
	edited, err := h.workflow.Edit(context.Background(), items[0].ID, "reviewer-1", EditRequest{RecommendedProductID: &newID})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if edited.RecommendedProduct.ID != newID {
		t.Errorf("Expected product %s, got %s", newID, edited.RecommendedProduct.ID)
	}
	if edited.Category != string(edited.RecommendedProduct.Category) {
		t.Errorf("Category should follow the new product")
	}
	if edited.Price != edited.RecommendedProduct.BasePrice {
		t.Errorf("Price should reset to the new product base price")
	}

	unknown := "p99"
	if _, err := h.workflow.Edit(context.Background(), items[1].ID, "reviewer-1", EditRequest{RecommendedProductID: &unknown}); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Expected ErrMalformedInput for unknown product, got %v", err)
	}
}

func TestApproveBatchBestEffort(t *testing.T) {
	h := newTestHarness(t, nil)
	items := h.surface(t, "c01", 6)
	ctx := context.Background()

	idA := items[0].ID
	idB := items[1].ID
	if _, err := h.workflow.Approve(ctx, idB, "reviewer-1"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	auditBefore := h.auditCount(t)

	outcomes := h.workflow.ApproveBatch(ctx, []string{idA, idB}, "reviewer-1")
	if len(outcomes) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(outcomes))
	}
	if !outcomes[0].Success || outcomes[0].ItemID != idA {
		t.Errorf("Expected idA success, got %+v", outcomes[0])
	}
	if outcomes[1].Success || outcomes[1].Error != ErrInvalidTransition.Error() {
		t.Errorf("Expected idB invalid transition, got %+v", outcomes[1])
	}

	got, err := h.workflow.Get(idA)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != StatusApproved {
		t.Errorf("Expected idA approved, got %s", got.Status)
	}

	// Exactly one new entry, for idA.
	if added := h.auditCount(t) - auditBefore; added != 1 {
		t.Errorf("Expected exactly 1 new audit entry, got %d", added)
	}
	entries, err := h.audit.Query(ctx, audit.QueryFilter{ActionTypes: []audit.ActionType{audit.ActionBatchApproval}})
	if err != nil {
		t.Fatalf("audit Query failed: %v", err)
	}
	if len(entries) != 1 || !strings.Contains(entries[0].TargetDescription, got.RecommendedProduct.Name) {
		t.Errorf("Batch audit entry should reference idA's item, got %+v", entries)
	}
}

func TestRejectBatchUnknownIDs(t *testing.T) {
	h := newTestHarness(t, nil)
	items := h.surface(t, "c01", 6)

	outcomes := h.workflow.RejectBatch(context.Background(), []string{items[0].ID, "ghost"}, "reviewer-2")
	if !outcomes[0].Success {
		t.Errorf("Expected first id to succeed, got %+v", outcomes[0])
	}
	if outcomes[1].Success || outcomes[1].Error != ErrItemNotFound.Error() {
		t.Errorf("Expected not-found outcome, got %+v", outcomes[1])
	}
}

func TestAuditCompleteness(t *testing.T) {
	h := newTestHarness(t, nil)
	items := h.surface(t, "c01", 8)
	ctx := context.Background()

	// N successful operations produce exactly N entries.
	price := 99.9
	operations := 0
	if _, err := h.workflow.Edit(ctx, items[0].ID, "reviewer-1", EditRequest{Price: &price}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	operations++
	for _, item := range items[:4] {
		if _, err := h.workflow.Approve(ctx, item.ID, "reviewer-1"); err != nil {
			t.Fatalf("Approve failed: %v", err)
		}
		operations++
	}
	for _, item := range items[4:6] {
		if _, err := h.workflow.Reject(ctx, item.ID, "reviewer-2"); err != nil {
			t.Fatalf("Reject failed: %v", err)
		}
		operations++
	}

	if count := h.auditCount(t); count != int64(operations) {
		t.Errorf("Expected %d audit entries, got %d", operations, count)
	}

	// Per-actor attribution survives.
	byActor, err := h.audit.Count(ctx, audit.QueryFilter{Actor: "reviewer-2"})
	if err != nil {
		t.Fatalf("audit Count failed: %v", err)
	}
	if byActor != 2 {
		t.Errorf("Expected 2 entries for reviewer-2, got %d", byActor)
	}
}

func TestStats(t *testing.T) {
	h := newTestHarness(t, nil)
	items := h.surface(t, "c01", 6)
	ctx := context.Background()

	if _, err := h.workflow.Approve(ctx, items[0].ID, "reviewer-1"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := h.workflow.Approve(ctx, items[1].ID, "reviewer-1"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := h.workflow.Reject(ctx, items[2].ID, "reviewer-1"); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	stats := h.workflow.Stats()
	want := Stats{Pending: 3, Approved: 2, Rejected: 1, Total: 6}
	if stats != want {
		t.Errorf("Expected %+v, got %+v", want, stats)
	}
}

func TestListFiltering(t *testing.T) {
	h := newTestHarness(t, nil)
	h.surface(t, "c01", 6) // customer Joao Silva Santos, agent Maria Santos
	ctx := context.Background()

	all := h.workflow.List(ListFilter{})
	if len(all) != 6 {
		t.Fatalf("Expected 6 items, got %d", len(all))
	}

	if _, err := h.workflow.Approve(ctx, all[0].ID, "reviewer-1"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	pending := h.workflow.List(ListFilter{Status: StatusPending})
	if len(pending) != 5 {
		t.Errorf("Expected 5 pending items, got %d", len(pending))
	}

	// Case-insensitive substring over customer.
	byCustomer := h.workflow.List(ListFilter{Search: "joao silva"})
	if len(byCustomer) != 6 {
		t.Errorf("Expected 6 items matching customer, got %d", len(byCustomer))
	}

	// Status AND search combined.
	combined := h.workflow.List(ListFilter{Status: StatusPending, Search: "JOAO"})
	if len(combined) != 5 {
		t.Errorf("Expected 5 pending items matching customer, got %d", len(combined))
	}

	// Search over recommended product name.
	byProduct := h.workflow.List(ListFilter{Search: strings.ToUpper(all[1].RecommendedProduct.Name[:6])})
	if len(byProduct) == 0 {
		t.Errorf("Expected product-name search to match")
	}

	none := h.workflow.List(ListFilter{Search: "zzz-no-match"})
	if len(none) != 0 {
		t.Errorf("Expected no matches, got %d", len(none))
	}
}

func TestRuleTogglingIdempotence(t *testing.T) {
	h := newTestHarness(t, rules.SeedRules())
	items := h.surface(t, "c01", 6)
	ctx := context.Background()

	// Force a min-confidence violation on one item by lowering nothing:
	// instead record the baseline violation sets for all items.
	baseline := make(map[string][]string)
	for _, item := range items {
		got, err := h.workflow.Get(item.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		baseline[item.ID] = got.RuleViolations
	}

	// Deactivate and immediately reactivate an unrelated rule.
	if _, err := h.workflow.ToggleRule(ctx, "rule-stock-threshold"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if _, err := h.workflow.ToggleRule(ctx, "rule-stock-threshold"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	for id, want := range baseline {
		got, err := h.workflow.Get(id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got.RuleViolations) != len(want) {
			t.Errorf("Item %s: violations changed across toggle round-trip: %v != %v", id, got.RuleViolations, want)
			continue
		}
		for i := range want {
			if got.RuleViolations[i] != want[i] {
				t.Errorf("Item %s: violations changed across toggle round-trip: %v != %v", id, got.RuleViolations, want)
				break
			}
		}
	}
}

func TestToggleReevaluatesPendingOnly(t *testing.T) {
	h := newTestHarness(t, nil)
	items := h.surface(t, "c01", 6)
	ctx := context.Background()

	// Approve one item, then add a rule that everything violates.
	if _, err := h.workflow.Approve(ctx, items[0].ID, "reviewer-1"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	err := h.workflow.AddRule(ctx, rules.BusinessRule{
		ID:     "rule-strict-confidence",
		Name:   "Impossible confidence floor",
		Type:   rules.TypeMinConfidence,
		Active: true,
		Parameters: rules.Parameters{
			MinConfidence: rules.Float64(99.0),
		},
	})
	if err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}

	terminal, err := h.workflow.Get(items[0].ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	for _, id := range terminal.RuleViolations {
		if id == "rule-strict-confidence" {
			t.Error("Terminal item should not be re-evaluated")
		}
	}

	pending, err := h.workflow.Get(items[1].ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	found := false
	for _, id := range pending.RuleViolations {
		if id == "rule-strict-confidence" {
			found = true
		}
	}
	if !found {
		t.Errorf("Pending item should carry the new violation, got %v", pending.RuleViolations)
	}

	// Removing the rule clears it from pending items.
	if err := h.workflow.RemoveRule(ctx, "rule-strict-confidence"); err != nil {
		t.Fatalf("RemoveRule failed: %v", err)
	}
	pending, err = h.workflow.Get(items[1].ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	for _, id := range pending.RuleViolations {
		if id == "rule-strict-confidence" {
			t.Error("Removed rule should not linger in violation sets")
		}
	}
}

func TestViolationsAreAdvisory(t *testing.T) {
	h := newTestHarness(t, []rules.BusinessRule{{
		ID:         "rule-strict-confidence",
		Name:       "Impossible confidence floor",
		Type:       rules.TypeMinConfidence,
		Active:     true,
		Parameters: rules.Parameters{MinConfidence: rules.Float64(99.0)},
	}})
	items := h.surface(t, "c01", 6)

	if len(items[0].RuleViolations) == 0 {
		t.Fatal("Expected the impossible rule to flag the item")
	}

	// A flagged item still transitions.
	if _, err := h.workflow.Approve(context.Background(), items[0].ID, "reviewer-1"); err != nil {
		t.Fatalf("Violations must not block approval: %v", err)
	}
}

func TestSourceProductPairing(t *testing.T) {
	h := newTestHarness(t, nil)
	items := h.surface(t, "c01", 8)

	for _, item := range items {
		if item.SourceProduct.ID == "" {
			t.Errorf("Item %s has no source product", item.ID)
		}
		if item.SourceProduct.Category != item.RecommendedProduct.Category {
			t.Errorf("Item %s: source category %s != recommended category %s",
				item.ID, item.SourceProduct.Category, item.RecommendedProduct.Category)
		}
	}
}
