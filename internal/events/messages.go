package events

import (
	"encoding/json"
	"time"

	"financeflow/internal/core"
)

// ExpensePutMessage announces that an expense was created or fully replaced
// under an identity. Carries the complete document; consumers never need to
// read the store back.
type ExpensePutMessage struct {
	UID       string       `json:"uid"`
	Expense   core.Expense `json:"expense"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewExpensePutMessage(uid string, e core.Expense) *ExpensePutMessage {
	return &ExpensePutMessage{UID: uid, Expense: e, Timestamp: time.Now()}
}

func (m *ExpensePutMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpensePutMessageFromJSON(data []byte) (*ExpensePutMessage, error) {
	var msg ExpensePutMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ExpenseRemovedMessage announces that an expense document was removed.
type ExpenseRemovedMessage struct {
	UID       string    `json:"uid"`
	ExpenseID string    `json:"expense_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseRemovedMessage(uid, expenseID string) *ExpenseRemovedMessage {
	return &ExpenseRemovedMessage{UID: uid, ExpenseID: expenseID, Timestamp: time.Now()}
}

func (m *ExpenseRemovedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseRemovedMessageFromJSON(data []byte) (*ExpenseRemovedMessage, error) {
	var msg ExpenseRemovedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
