// Package session implements the local record tier: per-session scratch
// storage for unauthenticated use. The whole record set is serialized as one
// JSON blob under a fixed key and overwritten wholesale on every mutation;
// there is no partial patch format.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"financeflow/internal/core"
	"financeflow/internal/store"
)

// RecordsKey is the fixed key the serialized record set lives under.
const RecordsKey = "expenses"

// KV is the session-scoped key-value surface backing the blob.
type KV interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

// MemoryKV is an ephemeral in-process KV. Its contents live exactly as long
// as the process, mirroring browser session storage.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string][]byte)}
}

func (kv *MemoryKV) Get(key string) ([]byte, bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	v, ok := kv.m[key]
	return v, ok
}

func (kv *MemoryKV) Set(key string, value []byte) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.m[key] = append([]byte(nil), value...)
}

func (kv *MemoryKV) Delete(key string) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.m, key)
}

// Store adapts a session KV to the record store contract.
type Store struct {
	mu sync.Mutex
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

// NewEphemeral returns a store over a fresh in-process KV.
func NewEphemeral() *Store {
	return New(NewMemoryKV())
}

func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) Put(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}

	replaced := false
	for i := range items {
		if items[i].ID == e.ID {
			items[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, e)
	}
	core.SortExpensesByDate(items)
	return s.write(items)
}

func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return s.write(kept)
}

func (s *Store) read() ([]core.Expense, error) {
	blob, ok := s.kv.Get(RecordsKey)
	if !ok || len(blob) == 0 {
		return nil, nil
	}
	var items []core.Expense
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("%w: decode session blob: %v", store.ErrLoadFailed, err)
	}
	return items, nil
}

func (s *Store) write(items []core.Expense) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode session blob: %v", store.ErrWriteFailed, err)
	}
	s.kv.Set(RecordsKey, blob)
	return nil
}
