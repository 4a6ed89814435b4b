// Package profile holds the read-mostly user profile the core consumes:
// the monthly budget feeding the aggregator and the display currency. It is
// mutated only by the settings collaborator, never by the ledger engine.
package profile

import (
	"errors"
	"sync"

	"financeflow/internal/core"
)

// Symbol mapping is display-only; no conversion happens anywhere.
var symbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
	"CHF": "Fr",
	"AUD": "A$",
	"CAD": "C$",
	"SEK": "kr",
	"INR": "₹",
}

var ErrUnknownCurrency = errors.New("unknown currency")

// SymbolFor returns the display symbol for a currency code.
func SymbolFor(code string) (string, bool) {
	s, ok := symbols[code]
	return s, ok
}

// Profile is safe for concurrent readers and the single settings writer.
type Profile struct {
	mu       sync.RWMutex
	currency string
	budget   core.Money
}

func New(currency string, budget core.Money) (*Profile, error) {
	p := &Profile{}
	if err := p.Update(currency, budget); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) Currency() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currency
}

func (p *Profile) Symbol() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return symbols[p.currency]
}

func (p *Profile) Budget() core.Money {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.budget
}

// Update replaces currency and budget. The budget may be zero but never
// negative; the currency must be a known code.
func (p *Profile) Update(currency string, budget core.Money) error {
	if _, ok := symbols[currency]; !ok {
		return ErrUnknownCurrency
	}
	if budget.IsNegative() {
		return core.ErrInvalidAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currency = currency
	p.budget = budget
	return nil
}
