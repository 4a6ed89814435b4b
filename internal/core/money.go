// Package core holds the expense entity, its canonical date form and the
// monetary type shared by the ledger, the stores and the aggregator.
package core

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a non-negative decimal amount in the owning profile's currency.
// No currency code travels with the value; currency is a property of the
// user profile, not the transaction.
//
// Rounding policy: round half-up (away from zero) to 2 fractional digits.
// Stored precision beyond 2 digits is tolerated but never surfaced; every
// value entering an aggregate is rounded first.
type Money struct {
	amount decimal.Decimal
}

// NewMoney wraps a raw decimal value.
func NewMoney(d decimal.Decimal) Money {
	return Money{amount: d}
}

// MoneyFromString parses a decimal amount. Both dot and comma decimal
// separators are accepted; signs are rejected, amounts are never negative.
func MoneyFromString(s string) (Money, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{amount: d}, nil
}

// Zero is the zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Rounded returns the amount rounded half-up to 2 fractional digits.
func (m Money) Rounded() Money {
	return Money{amount: m.amount.Round(2)}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// StringFixed renders the rounded amount with exactly 2 fractional digits.
func (m Money) StringFixed() string {
	return m.amount.StringFixed(2)
}

func (m Money) String() string {
	return m.amount.String()
}

// MarshalJSON emits a bare JSON number, matching the document shape of the
// remote tier where amount is a numeric field.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, data)
	}
	m.amount = d
	return nil
}
