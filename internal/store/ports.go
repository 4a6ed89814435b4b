// Package store defines the tier-agnostic record store contract. Two tiers
// satisfy it: the session-scoped local cache used while anonymous, and the
// per-identity document store used while signed in. Which tier is bound at
// any moment is decided by the identity selector; the stores themselves
// never inspect identity state.
package store

import (
	"context"
	"errors"

	"financeflow/internal/core"
)

var (
	// ErrLoadFailed marks a failed tier read. The record set stays empty and
	// the caller is told to retry; the condition never escapes as a panic.
	ErrLoadFailed = errors.New("load failed")

	// ErrWriteFailed marks a rejected put or remove.
	ErrWriteFailed = errors.New("write failed")
)

// RecordStore is the uniform contract over whichever tier is active.
type RecordStore interface {
	// Load returns the full record set. The read is finite and restartable;
	// malformed documents are skipped, a failed read wraps ErrLoadFailed.
	Load(ctx context.Context) ([]core.Expense, error)

	// Put upserts by id: a new id creates the record, an existing id fully
	// replaces it. There is no partial-field merge.
	Put(ctx context.Context, e core.Expense) error

	// Remove deletes by id. Removing an absent id is not an error.
	Remove(ctx context.Context, id string) error
}
