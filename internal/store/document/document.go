// Package document implements the remote record tier: a keyed document
// collection per identity, one row per expense document, backed by SQLite.
// A Store is bound to a single identity at construction; rebinding on
// sign-in or sign-out means constructing a new Store, never mutating one.
package document

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"financeflow/internal/core"
	"financeflow/internal/store"

	_ "modernc.org/sqlite"
)

// Open opens the backing database and brings the schema up to date.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// Store is the expense document collection of one identity.
type Store struct {
	db  *sql.DB
	uid string
}

func NewStore(db *sql.DB, uid string) *Store {
	return &Store{db: db, uid: uid}
}

// UID returns the identity this collection belongs to.
func (s *Store) UID() string {
	return s.uid
}

// Load reads every document under the bound identity. Documents that fail
// shape validation are skipped with a warning rather than propagated; only a
// failed read reports a load failure.
func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, category, description, amount
		   FROM expense_documents
		  WHERE uid = ?`, s.uid)
	if err != nil {
		return nil, fmt.Errorf("%w: query documents: %v", store.ErrLoadFailed, err)
	}
	defer rows.Close()

	var items []core.Expense
	for rows.Next() {
		var (
			e      core.Expense
			date   string
			cat    string
			amount string
		)
		if err := rows.Scan(&e.ID, &date, &cat, &e.Description, &amount); err != nil {
			return nil, fmt.Errorf("%w: scan document: %v", store.ErrLoadFailed, err)
		}
		e.Date = core.DateString(date)
		e.Category = core.Category(cat)
		m, err := core.MoneyFromString(amount)
		if err == nil {
			e.Amount = m
			err = e.Validate()
		}
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed expense document",
				"uid", s.uid, "expense_id", e.ID, "error", err)
			continue
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read documents: %v", store.ErrLoadFailed, err)
	}
	return items, nil
}

// Put upserts the document keyed by the expense id, replacing all fields.
func (s *Store) Put(ctx context.Context, e core.Expense) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expense_documents (uid, id, date, category, description, amount)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (uid, id) DO UPDATE SET
		   date = excluded.date,
		   category = excluded.category,
		   description = excluded.description,
		   amount = excluded.amount`,
		s.uid, e.ID, string(e.Date), string(e.Category), e.Description, e.Amount.String())
	if err != nil {
		return fmt.Errorf("%w: upsert document %s: %v", store.ErrWriteFailed, e.ID, err)
	}
	return nil
}

// Remove deletes the document keyed by id. Absent ids are not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM expense_documents WHERE uid = ? AND id = ?`, s.uid, id)
	if err != nil {
		return fmt.Errorf("%w: delete document %s: %v", store.ErrWriteFailed, id, err)
	}
	return nil
}
