package core

import (
	"errors"
	"strings"
)

// Category is one of the fixed expense category tags. Free-form values are
// rejected at the boundary; the ledger never sees an unknown category.
type Category string

const (
	CategoryEducation      Category = "Education"
	CategoryEntertainment  Category = "Entertainment"
	CategoryFoodAndDrinks  Category = "Food & Drinks"
	CategoryHealthAndCare  Category = "Health & Care"
	CategoryHolidays       Category = "Holidays"
	CategoryHomeUtilities  Category = "Home & Utilities"
	CategoryShopping       Category = "Shopping"
	CategoryTransportation Category = "Transportation"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryEducation,
	CategoryEntertainment,
	CategoryFoodAndDrinks,
	CategoryHealthAndCare,
	CategoryHolidays,
	CategoryHomeUtilities,
	CategoryShopping,
	CategoryTransportation,
}

// Valid reports whether c is in the enumerated set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is the sole persisted entity. The ID is minted by the caller when
// the expense is created and stays stable for the record's lifetime; the
// backing stores never generate it.
type Expense struct {
	ID          string     `json:"id"`
	Date        DateString `json:"date"`
	Category    Category   `json:"category"`
	Description string     `json:"description"`
	Amount      Money      `json:"amount"`
}

var (
	ErrMissingID        = errors.New("missing expense id")
	ErrInvalidDate      = errors.New("invalid date")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
)

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrMissingID
	}
	if _, err := e.Date.Time(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrUnknownCategory
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
