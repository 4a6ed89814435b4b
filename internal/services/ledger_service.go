// Package services orchestrates the ledger engine with the optional change
// feed. Mutations succeed or fail on the engine alone; event publishing is
// strictly after-the-fact.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"financeflow/internal/aggregate"
	"financeflow/internal/core"
	"financeflow/internal/identity"
	"financeflow/internal/ledger"
	"financeflow/internal/profile"
)

// Publisher is the change-feed surface the service needs.
type Publisher interface {
	PublishExpensePut(ctx context.Context, uid string, e core.Expense) error
	PublishExpenseRemoved(ctx context.Context, uid, expenseID string) error
	Close() error
}

// LedgerService is the intent surface UI collaborators call into.
type LedgerService struct {
	engine   *ledger.Engine
	selector *identity.Selector
	profile  *profile.Profile
	events   Publisher
}

func NewLedgerService(engine *ledger.Engine, selector *identity.Selector, prof *profile.Profile, events Publisher) *LedgerService {
	return &LedgerService{
		engine:   engine,
		selector: selector,
		profile:  prof,
		events:   events,
	}
}

// AddOrUpdate applies the intent through the engine and, on success,
// announces the change.
func (s *LedgerService) AddOrUpdate(ctx context.Context, e core.Expense) error {
	if err := s.engine.AddOrUpdate(ctx, e); err != nil {
		return fmt.Errorf("add or update expense: %w", err)
	}
	s.publishPut(ctx, e)
	return nil
}

// Delete applies the intent through the engine. The engine's optimistic
// delete semantics surface a failed backing removal to the caller; the event
// is published only when the removal fully succeeded.
func (s *LedgerService) Delete(ctx context.Context, id string) error {
	if err := s.engine.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.publishRemoved(ctx, id)
	return nil
}

// Snapshot returns the current record set in invariant order.
func (s *LedgerService) Snapshot() []core.Expense {
	return s.engine.Snapshot()
}

// Summary derives the monthly view for one bucket against the profile budget.
func (s *LedgerService) Summary(bucket core.Bucket) core.MonthSummary {
	return aggregate.Summarize(s.engine.Snapshot(), bucket, s.profile.Budget())
}

func (s *LedgerService) publishPut(ctx context.Context, e core.Expense) {
	if s.events == nil {
		slog.DebugContext(ctx, "Event publisher not configured, skipping put event")
		return
	}
	uid, _ := s.selector.Current()
	if err := s.events.PublishExpensePut(ctx, uid, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish put event",
			"expense_id", e.ID, "error", err)
	}
}

func (s *LedgerService) publishRemoved(ctx context.Context, id string) {
	if s.events == nil {
		slog.DebugContext(ctx, "Event publisher not configured, skipping removed event")
		return
	}
	uid, _ := s.selector.Current()
	if err := s.events.PublishExpenseRemoved(ctx, uid, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish removed event",
			"expense_id", id, "error", err)
	}
}

// Close releases the event publisher.
func (s *LedgerService) Close() error {
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			return fmt.Errorf("close events: %w", err)
		}
	}
	return nil
}
