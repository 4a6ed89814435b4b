// Package ledger owns the in-memory expense record set. All mutations flow
// through the Engine, which keeps exactly one record per id, keeps the set
// sorted by date descending after every mutation, and keeps memory and the
// bound record tier from diverging on a failed write.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"financeflow/internal/core"
	"financeflow/internal/store"
)

// ErrValidation marks a rejected intent. Nothing was mutated and nothing
// reached storage.
var ErrValidation = errors.New("validation failed")

// Engine applies add/update/delete intents to the active record tier.
//
// Concurrency model: mu serializes access to the record set; a per-id gate
// allows at most one outstanding write per record id, so a second intent for
// the same id queues behind the first instead of racing it. Writes for
// different ids proceed concurrently. Rebind takes the flight lock
// exclusively, so a tier switch waits for in-flight writes to settle and no
// write can start against the wrong tier.
type Engine struct {
	mu      sync.Mutex
	tier    store.RecordStore
	records []core.Expense
	gen     uint64 // bumped on every rebind; stale rollbacks check it

	flight sync.RWMutex
	loads  singleflight.Group

	gateMu sync.Mutex
	gates  map[string]*gate
}

type gate struct {
	mu   sync.Mutex
	refs int
}

func New(tier store.RecordStore) *Engine {
	return &Engine{
		tier:  tier,
		gates: make(map[string]*gate),
	}
}

// Load replaces the record set with the active tier's contents. Concurrent
// calls coalesce into a single backing read. On failure the set is left
// empty and the caller is told to retry.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	tier := e.tier
	gen := e.gen
	e.mu.Unlock()

	_, err, _ := e.loads.Do("load", func() (any, error) {
		items, err := tier.Load(ctx)
		if err != nil {
			return nil, err
		}
		core.SortExpensesByDate(items)

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.gen != gen {
			// A rebind happened underneath; this result belongs to the
			// previous tier and must not leak into the new set.
			return nil, nil
		}
		e.records = items
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	return nil
}

// AddOrUpdate validates the expense, applies it to the record set and
// persists it through the active tier. On a write failure the in-memory
// mutation is rolled back to the pre-call state; memory and backing store
// never diverge on a failed put.
func (e *Engine) AddOrUpdate(ctx context.Context, exp core.Expense) error {
	if err := exp.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	g := e.acquire(exp.ID)
	defer e.release(exp.ID, g)

	e.flight.RLock()
	defer e.flight.RUnlock()

	e.mu.Lock()
	tier := e.tier
	gen := e.gen
	prev, existed := e.find(exp.ID)
	e.apply(exp)
	e.mu.Unlock()

	if err := tier.Put(ctx, exp); err != nil {
		e.rollback(exp.ID, prev, existed, gen)
		return fmt.Errorf("put expense %s: %w", exp.ID, err)
	}

	slog.InfoContext(ctx, "Expense persisted",
		"expense_id", exp.ID,
		"category", string(exp.Category),
		"amount", exp.Amount.StringFixed(),
		"operation", opFor(existed))
	return nil
}

// Delete removes the record optimistically and then confirms against the
// tier. A failed backing removal is reported for retry but the in-memory
// entry is not resurrected; the user already saw it go.
func (e *Engine) Delete(ctx context.Context, id string) error {
	g := e.acquire(id)
	defer e.release(id, g)

	e.flight.RLock()
	defer e.flight.RUnlock()

	e.mu.Lock()
	tier := e.tier
	e.remove(id)
	e.mu.Unlock()

	if err := tier.Remove(ctx, id); err != nil {
		slog.WarnContext(ctx, "Expense removed from memory but not from storage",
			"expense_id", id, "error", err)
		return fmt.Errorf("remove expense %s: %w", id, err)
	}

	slog.InfoContext(ctx, "Expense deleted", "expense_id", id)
	return nil
}

// Snapshot returns a copy of the record set in its invariant ordering.
func (e *Engine) Snapshot() []core.Expense {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]core.Expense, len(e.records))
	copy(out, e.records)
	return out
}

// Rebind switches the engine to a new tier: it waits for in-flight writes to
// settle, discards the current set without writing it back, binds the tier
// and loads fresh. Local scratch records must never be uploaded to a newly
// authenticated identity, and a previous identity's records must never leak
// into the next session.
func (e *Engine) Rebind(ctx context.Context, tier store.RecordStore) error {
	e.flight.Lock()
	e.mu.Lock()
	e.records = nil
	e.tier = tier
	e.gen++
	e.mu.Unlock()
	e.flight.Unlock()

	return e.Load(ctx)
}

func (e *Engine) find(id string) (core.Expense, bool) {
	for _, it := range e.records {
		if it.ID == id {
			return it, true
		}
	}
	return core.Expense{}, false
}

// apply upserts in place and re-establishes the sort invariant. Caller holds mu.
func (e *Engine) apply(exp core.Expense) {
	replaced := false
	for i := range e.records {
		if e.records[i].ID == exp.ID {
			e.records[i] = exp
			replaced = true
			break
		}
	}
	if !replaced {
		e.records = append(e.records, exp)
	}
	core.SortExpensesByDate(e.records)
}

// remove drops the entry by id if present. Caller holds mu.
func (e *Engine) remove(id string) {
	kept := e.records[:0]
	for _, it := range e.records {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	e.records = kept
}

// rollback restores the pre-call state for one id after a failed put. If the
// engine was rebound in the meantime the record set belongs to another tier
// and is left alone.
func (e *Engine) rollback(id string, prev core.Expense, existed bool, gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		return
	}
	if existed {
		e.apply(prev)
	} else {
		e.remove(id)
	}
}

func (e *Engine) acquire(id string) *gate {
	e.gateMu.Lock()
	g, ok := e.gates[id]
	if !ok {
		g = &gate{}
		e.gates[id] = g
	}
	g.refs++
	e.gateMu.Unlock()

	g.mu.Lock()
	return g
}

func (e *Engine) release(id string, g *gate) {
	g.mu.Unlock()

	e.gateMu.Lock()
	g.refs--
	if g.refs == 0 {
		delete(e.gates, id)
	}
	e.gateMu.Unlock()
}

func opFor(existed bool) string {
	if existed {
		return "update"
	}
	return "create"
}
