package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"financeflow/internal/core"
	"financeflow/internal/identity"
	"financeflow/internal/ledger"
	"financeflow/internal/profile"
	"financeflow/internal/store"
	"financeflow/internal/store/session"
)

type capturingPublisher struct {
	mu      sync.Mutex
	puts    []string
	removes []string
	closed  bool
}

func (p *capturingPublisher) PublishExpensePut(_ context.Context, _ string, e core.Expense) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.puts = append(p.puts, e.ID)
	return nil
}

func (p *capturingPublisher) PublishExpenseRemoved(_ context.Context, _, expenseID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removes = append(p.removes, expenseID)
	return nil
}

func (p *capturingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func newService(t *testing.T, pub Publisher) *LedgerService {
	t.Helper()
	local := session.NewEphemeral()
	engine := ledger.New(local)
	selector := identity.NewSelector(engine, local, func(string) store.RecordStore { return local })

	budget, err := core.MoneyFromString("500")
	if err != nil {
		t.Fatal(err)
	}
	prof, err := profile.New("EUR", budget)
	if err != nil {
		t.Fatal(err)
	}
	return NewLedgerService(engine, selector, prof, pub)
}

func expense(t *testing.T, id string) core.Expense {
	t.Helper()
	amount, err := core.MoneyFromString("12.5")
	if err != nil {
		t.Fatal(err)
	}
	return core.Expense{
		ID:          id,
		Date:        core.ToCanonical(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)),
		Category:    core.CategoryFoodAndDrinks,
		Description: "Lunch",
		Amount:      amount,
	}
}

func TestMutationsPublishEvents(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	svc := newService(t, pub)

	if err := svc.AddOrUpdate(ctx, expense(t, "e1")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Delete(ctx, "e1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(pub.puts) != 1 || pub.puts[0] != "e1" {
		t.Fatalf("expected one put event for e1, got %v", pub.puts)
	}
	if len(pub.removes) != 1 || pub.removes[0] != "e1" {
		t.Fatalf("expected one removed event for e1, got %v", pub.removes)
	}
}

func TestNilPublisherIsFine(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)

	if err := svc.AddOrUpdate(ctx, expense(t, "e1")); err != nil {
		t.Fatalf("add without publisher: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close without publisher: %v", err)
	}
}

func TestValidationFailurePublishesNothing(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	svc := newService(t, pub)

	bad := expense(t, "e1")
	bad.Description = ""
	if err := svc.AddOrUpdate(ctx, bad); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(pub.puts) != 0 {
		t.Fatalf("rejected intent must not be announced")
	}
}

func TestSummaryUsesProfileBudget(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, nil)

	if err := svc.AddOrUpdate(ctx, expense(t, "e1")); err != nil {
		t.Fatalf("add: %v", err)
	}
	sum := svc.Summary(core.NewBucket(2024, time.March))
	if got := sum.Total.StringFixed(); got != "12.50" {
		t.Fatalf("total: expected 12.50, got %s", got)
	}
	if got := sum.Balance.StringFixed(); got != "487.50" {
		t.Fatalf("balance: expected 487.50, got %s", got)
	}
}
