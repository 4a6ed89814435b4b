package core

import (
	"errors"
	"testing"
	"time"
)

func mustMoney(t *testing.T, s string) Money {
	t.Helper()
	m, err := MoneyFromString(s)
	if err != nil {
		t.Fatalf("parse money %q: %v", s, err)
	}
	return m
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Fatalf("category %q should be valid", c)
		}
	}
	for _, c := range []Category{"", "Groceries", "food & drinks"} {
		if c.Valid() {
			t.Fatalf("category %q should be rejected", c)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	date := ToCanonical(time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC))
	good := Expense{
		ID:          "e1",
		Date:        date,
		Category:    CategoryFoodAndDrinks,
		Description: "Lunch",
		Amount:      mustMoney(t, "12.5"),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		e    Expense
		want error
	}{
		{"missing id", Expense{Date: date, Category: CategoryShopping, Description: "a", Amount: mustMoney(t, "1")}, ErrMissingID},
		{"bad date", Expense{ID: "x", Date: "03/03/2024", Category: CategoryShopping, Description: "a", Amount: mustMoney(t, "1")}, ErrInvalidDate},
		{"unknown category", Expense{ID: "x", Date: date, Category: "Groceries", Description: "a", Amount: mustMoney(t, "1")}, ErrUnknownCategory},
		{"empty description", Expense{ID: "x", Date: date, Category: CategoryShopping, Description: "  ", Amount: mustMoney(t, "1")}, ErrEmptyDescription},
		{"zero amount", Expense{ID: "x", Date: date, Category: CategoryShopping, Description: "a", Amount: Zero()}, ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.e.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
