// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

package curation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iarecomend/curator/internal/audit"
	"github.com/iarecomend/curator/internal/catalog"
	"github.com/iarecomend/curator/internal/metrics"
	"github.com/iarecomend/curator/internal/recommend"
	"github.com/iarecomend/curator/internal/rules"
)

// Workflow wires the ranker, rule engine, and audit recorder around the
// item store. All operations are synchronous; a transition does not return
// success until its audit entry has been written.
type Workflow struct {
	store    *Store
	ranker   *recommend.Ranker
	engine   *rules.Engine
	recorder *audit.Recorder
	catalog  catalog.CatalogProvider
	profiles catalog.ProfileProvider
	logger   zerolog.Logger
}

// NewWorkflow creates a workflow over the given collaborators.
func NewWorkflow(
	store *Store,
	ranker *recommend.Ranker,
	engine *rules.Engine,
	recorder *audit.Recorder,
	catalogProvider catalog.CatalogProvider,
	profileProvider catalog.ProfileProvider,
	logger zerolog.Logger,
) *Workflow {
	return &Workflow{
		store:    store,
		ranker:   ranker,
		engine:   engine,
		recorder: recorder,
		catalog:  catalogProvider,
		profiles: profileProvider,
		logger:   logger.With().Str("component", "curation").Logger(),
	}
}

// Surface ranks the catalog for the customer and creates one Pending item
// per candidate, evaluated against the active rules. desiredCount follows
// the ranker's bounds; a catalog with fewer eligible products yields fewer
// items, which is degraded input, not an error.
func (w *Workflow) Surface(ctx context.Context, customerID, agentRef string, desiredCount int) ([]Item, error) {
	start := time.Now()

	customer, err := w.profiles.FetchCustomer(ctx, customerID)
	if err != nil {
		metrics.RecordRanking("provider_error", 0, 0)
		return nil, fmt.Errorf("surface recommendations: %w", err)
	}

	products, err := w.catalog.FetchProducts(ctx, catalog.ProductFilter{})
	if err != nil {
		metrics.RecordRanking("provider_error", 0, 0)
		return nil, fmt.Errorf("surface recommendations: %w", err)
	}

	candidates, err := w.ranker.Rank(customer, products, desiredCount)
	if err != nil {
		if errors.Is(err, recommend.ErrMalformedInput) {
			metrics.RecordRanking("malformed_input", 0, 0)
		} else {
			metrics.RecordRanking("provider_error", 0, 0)
		}
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]Item, 0, len(candidates))
	for _, candidate := range candidates {
		item := Item{
			ID:                 uuid.New().String(),
			CustomerRef:        customer.Name,
			AgentRef:           agentRef,
			SourceProduct:      sourceFor(&candidate, products),
			RecommendedProduct: candidate.Product,
			Confidence:         candidate.Confidence,
			Category:           string(candidate.Product.Category),
			Price:              candidate.Product.BasePrice,
			Rationale:          candidate.Rationale,
			Status:             StatusPending,
			CreatedAt:          now,
		}
		item.RuleViolations = w.evaluate(&item)

		if err := w.store.Insert(item); err != nil {
			return nil, fmt.Errorf("surface recommendations: %w", err)
		}
		items = append(items, item)
	}

	w.updatePendingGauge()
	metrics.RecordRanking("success", len(items), time.Since(start))

	w.logger.Info().
		Str("customer_id", customerID).
		Str("agent", agentRef).
		Int("items", len(items)).
		Msg("Surfaced recommendations for review")
	return items, nil
}

// Get returns the item by id.
func (w *Workflow) Get(id string) (Item, error) {
	return w.store.Get(id)
}

// List returns items matching the filter, newest first.
func (w *Workflow) List(filter ListFilter) []Item {
	return w.store.List(filter)
}

// Stats summarizes the item population by status.
func (w *Workflow) Stats() Stats {
	return w.store.Stats()
}

// Approve transitions the item from Pending to Approved and records the
// audit entry before returning.
func (w *Workflow) Approve(ctx context.Context, id, actor string) (Item, error) {
	return w.transition(ctx, id, actor, StatusApproved, audit.ActionApproval, "approve")
}

// Reject transitions the item from Pending to Rejected and records the
// audit entry before returning.
func (w *Workflow) Reject(ctx context.Context, id, actor string) (Item, error) {
	return w.transition(ctx, id, actor, StatusRejected, audit.ActionRejection, "reject")
}

func (w *Workflow) transition(ctx context.Context, id, actor string, to Status, action audit.ActionType, name string) (Item, error) {
	item, err := w.store.Transition(id, to)
	if err != nil {
		metrics.RecordTransition(name, outcomeLabel(err))
		return Item{}, err
	}

	w.recorder.RecordAction(ctx, action, actor,
		describeItem(&item),
		fmt.Sprintf("status changed to %s", to))

	metrics.RecordTransition(name, "success")
	w.updatePendingGauge()

	w.logger.Info().
		Str("item_id", id).
		Str("actor", actor).
		Str("status", string(to)).
		Msg("Curation item transitioned")
	return item, nil
}

// Edit applies reviewer changes to a Pending item, re-runs the rule
// engine on the result, and records the audit entry before returning.
func (w *Workflow) Edit(ctx context.Context, id, actor string, req EditRequest) (Item, error) {
	if req.Price != nil && *req.Price < 0 {
		metrics.RecordTransition("edit", "malformed_input")
		return Item{}, fmt.Errorf("%w: price must be >= 0, got %v", ErrMalformedInput, *req.Price)
	}

	var replacement *catalog.Product
	if req.RecommendedProductID != nil {
		products, err := w.catalog.FetchProducts(ctx, catalog.ProductFilter{})
		if err != nil {
			return Item{}, fmt.Errorf("edit item %s: %w", id, err)
		}
		for i := range products {
			if products[i].ID == *req.RecommendedProductID {
				replacement = &products[i]
				break
			}
		}
		if replacement == nil {
			metrics.RecordTransition("edit", "malformed_input")
			return Item{}, fmt.Errorf("%w: unknown product %s", ErrMalformedInput, *req.RecommendedProductID)
		}
	}

	var changes []string
	item, err := w.store.UpdatePending(id, func(draft *Item) error {
		if replacement != nil {
			changes = append(changes, fmt.Sprintf("product %s -> %s", draft.RecommendedProduct.Name, replacement.Name))
			draft.RecommendedProduct = *replacement
			draft.Category = string(replacement.Category)
			draft.Price = replacement.BasePrice
		}
		if req.Price != nil {
			changes = append(changes, fmt.Sprintf("price %.2f -> %.2f", draft.Price, *req.Price))
			draft.Price = *req.Price
		}
		if req.Rationale != nil {
			changes = append(changes, "rationale updated")
			draft.Rationale = *req.Rationale
		}
		draft.RuleViolations = w.evaluate(draft)
		return nil
	})
	if err != nil {
		metrics.RecordTransition("edit", outcomeLabel(err))
		return Item{}, err
	}

	w.recorder.RecordAction(ctx, audit.ActionEdit, actor,
		describeItem(&item),
		strings.Join(changes, "; "))

	metrics.RecordTransition("edit", "success")
	return item, nil
}

// ApproveBatch applies Approve to every id, best-effort: an id that is not
// Pending is skipped and reported, never aborting the batch. One audit
// entry is written per successful id.
func (w *Workflow) ApproveBatch(ctx context.Context, ids []string, actor string) []BatchOutcome {
	return w.batch(ctx, ids, actor, StatusApproved, audit.ActionBatchApproval, "approve")
}

// RejectBatch is the rejection counterpart of ApproveBatch.
func (w *Workflow) RejectBatch(ctx context.Context, ids []string, actor string) []BatchOutcome {
	return w.batch(ctx, ids, actor, StatusRejected, audit.ActionBatchRejection, "reject")
}

func (w *Workflow) batch(ctx context.Context, ids []string, actor string, to Status, action audit.ActionType, name string) []BatchOutcome {
	metrics.WorkflowBatchSize.WithLabelValues(name).Observe(float64(len(ids)))

	outcomes := make([]BatchOutcome, 0, len(ids))
	succeeded := 0
	for _, id := range ids {
		item, err := w.store.Transition(id, to)
		if err != nil {
			metrics.RecordTransition(name, outcomeLabel(err))
			outcomes = append(outcomes, BatchOutcome{ItemID: id, Error: failureLabel(err)})
			continue
		}

		w.recorder.RecordAction(ctx, action, actor,
			describeItem(&item),
			fmt.Sprintf("status changed to %s in batch of %d", to, len(ids)))

		metrics.RecordTransition(name, "success")
		outcomes = append(outcomes, BatchOutcome{ItemID: id, Success: true})
		succeeded++
	}

	w.updatePendingGauge()
	w.logger.Info().
		Str("actor", actor).
		Str("transition", name).
		Int("requested", len(ids)).
		Int("succeeded", succeeded).
		Msg("Batch transition completed")
	return outcomes
}

// AddRule inserts a rule and re-evaluates all Pending items.
func (w *Workflow) AddRule(ctx context.Context, rule rules.BusinessRule) error {
	if err := w.engine.Registry().Add(rule); err != nil {
		return err
	}
	w.reevaluatePending(ctx)
	w.logger.Info().Str("rule_id", rule.ID).Str("type", string(rule.Type)).Msg("Business rule added")
	return nil
}

// ToggleRule flips a rule's active flag, re-evaluates all Pending items,
// and returns the new state. Terminal items are never touched.
func (w *Workflow) ToggleRule(ctx context.Context, id string) (bool, error) {
	active, err := w.engine.Registry().Toggle(id)
	if err != nil {
		return false, err
	}
	w.reevaluatePending(ctx)
	w.logger.Info().Str("rule_id", id).Bool("active", active).Msg("Business rule toggled")
	return active, nil
}

// RemoveRule deletes a rule and re-evaluates all Pending items.
func (w *Workflow) RemoveRule(ctx context.Context, id string) error {
	if err := w.engine.Registry().Remove(id); err != nil {
		return err
	}
	w.reevaluatePending(ctx)
	w.logger.Info().Str("rule_id", id).Msg("Business rule removed")
	return nil
}

// Rules lists all rules, active and inactive.
func (w *Workflow) Rules() []rules.BusinessRule {
	return w.engine.Registry().List()
}

// Audit exposes the recorder for query endpoints.
func (w *Workflow) Audit() *audit.Recorder {
	return w.recorder
}

// reevaluatePending refreshes every Pending item's violation set. An item
// transitioned concurrently is skipped; terminal items keep the violations
// they had when they left Pending.
func (w *Workflow) reevaluatePending(_ context.Context) {
	for _, item := range w.store.List(ListFilter{Status: StatusPending}) {
		_, err := w.store.UpdatePending(item.ID, func(draft *Item) error {
			draft.RuleViolations = w.evaluate(draft)
			return nil
		})
		if err != nil && !errors.Is(err, ErrInvalidTransition) && !errors.Is(err, ErrItemNotFound) {
			w.logger.Warn().Err(err).Str("item_id", item.ID).Msg("Failed to re-evaluate item")
		}
	}
}

// evaluate runs the rule engine and returns the violated rule ids sorted
// ascending.
func (w *Workflow) evaluate(item *Item) []string {
	subject := rules.Subject{
		ItemID:           item.ID,
		Price:            item.Price,
		Confidence:       item.Confidence,
		Category:         item.Category,
		SourceBasePrice:  item.SourceProduct.BasePrice,
		SourceCategory:   string(item.SourceProduct.Category),
		RecommendedStock: item.RecommendedProduct.StockLevel,
	}

	violated := w.engine.Evaluate(&subject)
	metrics.RuleEvaluations.Inc()

	ids := make([]string, 0, len(violated))
	for id := range violated {
		ids = append(ids, id)
		if rule, err := w.engine.Registry().Get(id); err == nil {
			metrics.RuleViolations.WithLabelValues(string(rule.Type)).Inc()
		}
	}
	sort.Strings(ids)
	return ids
}

func (w *Workflow) updatePendingGauge() {
	metrics.WorkflowItemsPending.Set(float64(w.store.Stats().Pending))
}

// sourceFor picks what the customer plausibly had before the upgrade: the
// cheapest other product in the candidate's category, falling back to the
// candidate's own product when the category has nothing else.
func sourceFor(candidate *recommend.Candidate, products []catalog.Product) catalog.Product {
	source := candidate.Product
	found := false
	for _, p := range products {
		if p.ID == candidate.Product.ID || p.Category != candidate.Product.Category {
			continue
		}
		if !found || p.BasePrice < source.BasePrice {
			source = p
			found = true
		}
	}
	return source
}

// describeItem builds the human-readable audit target, e.g.
// "SSD Samsung 1TB for Pedro Oliveira".
func describeItem(item *Item) string {
	return fmt.Sprintf("%s for %s", item.RecommendedProduct.Name, item.CustomerRef)
}

// outcomeLabel maps a transition error to its metric label.
func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrItemNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedInput):
		return "malformed_input"
	default:
		return "error"
	}
}

// failureLabel maps a batch error to the outcome string reported per id.
func failureLabel(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		return ErrInvalidTransition.Error()
	case errors.Is(err, ErrItemNotFound):
		return ErrItemNotFound.Error()
	default:
		return err.Error()
	}
}
