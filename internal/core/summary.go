package core

// CategoryAmount is an amount aggregated under one category.
type CategoryAmount struct {
	Category Category `json:"category"`
	Amount   Money    `json:"amount"`
}

// MonthSummary is the derived view for one month bucket: total spend,
// remaining balance against the budget, and the per-category breakdown.
// Every enumerated category appears in ByCategory, zero when unused.
type MonthSummary struct {
	Bucket     Bucket           `json:"-"`
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	Total      Money            `json:"total"`
	Balance    Money            `json:"balance"`
	ByCategory []CategoryAmount `json:"by_category"`
}
