package aggregate

import (
	"testing"
	"time"

	"financeflow/internal/core"
)

func money(t *testing.T, s string) core.Money {
	t.Helper()
	m, err := core.MoneyFromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return m
}

func expense(t *testing.T, id string, date time.Time, cat core.Category, amount string) core.Expense {
	t.Helper()
	return core.Expense{
		ID:          id,
		Date:        core.ToCanonical(date),
		Category:    cat,
		Description: "test",
		Amount:      money(t, amount),
	}
}

func TestSummarizeSingleExpense(t *testing.T) {
	records := []core.Expense{
		expense(t, "e1", time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), core.CategoryFoodAndDrinks, "12.5"),
	}
	sum := Summarize(records, core.NewBucket(2024, time.March), money(t, "500"))

	if got := sum.Total.StringFixed(); got != "12.50" {
		t.Fatalf("total: expected 12.50, got %s", got)
	}
	if got := sum.Balance.StringFixed(); got != "487.50" {
		t.Fatalf("balance: expected 487.50, got %s", got)
	}

	for _, ca := range sum.ByCategory {
		want := "0.00"
		if ca.Category == core.CategoryFoodAndDrinks {
			want = "12.50"
		}
		if got := ca.Amount.StringFixed(); got != want {
			t.Fatalf("category %s: expected %s, got %s", ca.Category, want, got)
		}
	}
	if len(sum.ByCategory) != len(core.Categories) {
		t.Fatalf("every category must be present, got %d", len(sum.ByCategory))
	}
}

func TestSummarizeAfterDelete(t *testing.T) {
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	e1 := expense(t, "e1", march, core.CategoryFoodAndDrinks, "12.50")
	e2 := expense(t, "e2", march, core.CategoryShopping, "7.49")

	// e1 deleted: only e2 remains
	sum := Summarize([]core.Expense{e2}, core.NewBucket(2024, time.March), money(t, "500"))

	if got := sum.Total.StringFixed(); got != "7.49" {
		t.Fatalf("total: expected 7.49, got %s", got)
	}
	for _, ca := range sum.ByCategory {
		switch ca.Category {
		case core.CategoryShopping:
			if got := ca.Amount.StringFixed(); got != "7.49" {
				t.Fatalf("shopping: expected 7.49, got %s", got)
			}
		case e1.Category:
			if !ca.Amount.Equal(core.Zero()) {
				t.Fatalf("deleted expense still counted in %s", ca.Category)
			}
		}
	}
}

func TestFilterByBucket(t *testing.T) {
	records := []core.Expense{
		expense(t, "mar1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), core.CategoryShopping, "1"),
		expense(t, "mar31", time.Date(2024, 3, 31, 23, 30, 0, 0, time.UTC), core.CategoryShopping, "2"),
		expense(t, "apr", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), core.CategoryShopping, "3"),
		expense(t, "mar23", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), core.CategoryShopping, "4"),
	}

	got := FilterByBucket(records, core.NewBucket(2024, time.March))
	if len(got) != 2 {
		t.Fatalf("expected 2 records in 2024-03, got %d", len(got))
	}
	for _, e := range got {
		if e.ID != "mar1" && e.ID != "mar31" {
			t.Fatalf("unexpected record %s", e.ID)
		}
	}
}

func TestCategoryTotalsSumToTotalSpend(t *testing.T) {
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []core.Expense{
		expense(t, "a", march, core.CategoryFoodAndDrinks, "12.505"), // rounds to 12.51
		expense(t, "b", march, core.CategoryFoodAndDrinks, "0.005"),  // rounds to 0.01
		expense(t, "c", march, core.CategoryTransportation, "3.333"),
		expense(t, "d", march, core.CategoryEducation, "99.99"),
	}

	total := TotalSpend(records)
	sum := core.Zero()
	for _, ca := range CategoryTotals(records) {
		sum = sum.Add(ca.Amount)
	}
	if !sum.Equal(total) {
		t.Fatalf("category totals %s != total spend %s", sum, total)
	}
}

func TestBalanceCanGoNegative(t *testing.T) {
	march := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []core.Expense{
		expense(t, "a", march, core.CategoryHolidays, "150"),
	}
	sum := Summarize(records, core.NewBucket(2024, time.March), money(t, "100"))
	if got := sum.Balance.StringFixed(); got != "-50.00" {
		t.Fatalf("expected -50.00, got %s", got)
	}
}
