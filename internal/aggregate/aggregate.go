// Package aggregate derives monthly views from a record set. Everything here
// is a pure function of (records, bucket, budget): no state, no side
// effects, safe to recompute on every read.
package aggregate

import (
	"financeflow/internal/core"
)

// FilterByBucket keeps the records whose date falls in the given month
// bucket. Records with an unparseable date are dropped.
func FilterByBucket(records []core.Expense, b core.Bucket) []core.Expense {
	var out []core.Expense
	for _, r := range records {
		rb, err := r.Date.Bucket()
		if err != nil {
			continue
		}
		if rb == b {
			out = append(out, r)
		}
	}
	return out
}

// CategoryTotals sums amounts per enumerated category over records. Every
// category is present in the result, zero when unused, in display order.
// Each amount is rounded to 2 digits before it enters the sum.
func CategoryTotals(records []core.Expense) []core.CategoryAmount {
	sums := make(map[core.Category]core.Money, len(core.Categories))
	for _, c := range core.Categories {
		sums[c] = core.Zero()
	}
	for _, r := range records {
		sums[r.Category] = sums[r.Category].Add(r.Amount.Rounded())
	}

	out := make([]core.CategoryAmount, 0, len(core.Categories))
	for _, c := range core.Categories {
		out = append(out, core.CategoryAmount{Category: c, Amount: sums[c].Rounded()})
	}
	return out
}

// TotalSpend sums amounts over records, rounded to 2 digits.
func TotalSpend(records []core.Expense) core.Money {
	total := core.Zero()
	for _, r := range records {
		total = total.Add(r.Amount.Rounded())
	}
	return total.Rounded()
}

// Balance is budget minus total, rounded the same way as the total.
func Balance(budget, total core.Money) core.Money {
	return budget.Sub(total).Rounded()
}

// Summarize computes the full monthly view for one bucket and budget.
// Category totals always sum to the total spend.
func Summarize(records []core.Expense, b core.Bucket, budget core.Money) core.MonthSummary {
	filtered := FilterByBucket(records, b)
	total := TotalSpend(filtered)
	return core.MonthSummary{
		Bucket:     b,
		Year:       b.Year,
		Month:      int(b.Month),
		Total:      total,
		Balance:    Balance(budget, total),
		ByCategory: CategoryTotals(filtered),
	}
}
