package events

import (
	"testing"
	"time"

	"financeflow/internal/core"
)

func TestExpensePutMessageJSON(t *testing.T) {
	amount, err := core.MoneyFromString("12.5")
	if err != nil {
		t.Fatal(err)
	}
	e := core.Expense{
		ID:          "e1",
		Date:        core.ToCanonical(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)),
		Category:    core.CategoryFoodAndDrinks,
		Description: "Lunch",
		Amount:      amount,
	}

	body, err := NewExpensePutMessage("uid-1", e).ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	msg, err := ExpensePutMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.UID != "uid-1" || msg.Expense.ID != "e1" || !msg.Expense.Amount.Equal(amount) {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestExpenseRemovedMessageJSON(t *testing.T) {
	body, err := NewExpenseRemovedMessage("uid-1", "e1").ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	msg, err := ExpenseRemovedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.UID != "uid-1" || msg.ExpenseID != "e1" {
		t.Fatalf("unexpected message %+v", msg)
	}

	if _, err := ExpenseRemovedMessageFromJSON([]byte("{broken")); err == nil {
		t.Fatalf("expected error for broken payload")
	}
}
