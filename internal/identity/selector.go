package identity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"financeflow/internal/store"
)

// Rebinder is the ledger-side surface the selector drives. Rebinding must
// settle in-flight writes, discard the current record set without writing it
// back, bind the new tier and load fresh.
type Rebinder interface {
	Rebind(ctx context.Context, tier store.RecordStore) error
}

// RemoteFactory builds the remote tier bound to one identity.
type RemoteFactory func(uid string) store.RecordStore

// Selector is the identity-tier state machine. Anonymous maps to the local
// session tier, Identified(uid) to that identity's remote collection. The
// active tier is a function of identity state and nothing else.
type Selector struct {
	mu     sync.Mutex
	ledger Rebinder
	local  store.RecordStore
	remote RemoteFactory
	uid    string // "" while anonymous
}

func NewSelector(ledger Rebinder, local store.RecordStore, remote RemoteFactory) *Selector {
	return &Selector{
		ledger: ledger,
		local:  local,
		remote: remote,
	}
}

// Start binds the tier for the initial identity state and performs the first
// load.
func (s *Selector) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Rebind(ctx, s.tierFor(s.uid))
}

// Apply moves the state machine to the identity carried by id (nil means
// anonymous). A re-entrant sign-in with the same uid is a no-op and must not
// reload. On a real transition the record set is discarded, the tier rebound
// and freshly loaded; no write happens as part of the switch.
func (s *Selector) Apply(ctx context.Context, id *Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := ""
	if id != nil {
		next = id.UID
	}
	if next == s.uid {
		return nil
	}

	prev := s.uid
	s.uid = next

	slog.InfoContext(ctx, "Switching record tier",
		"from", stateName(prev), "to", stateName(next))

	if err := s.ledger.Rebind(ctx, s.tierFor(next)); err != nil {
		return fmt.Errorf("switch tier: %w", err)
	}
	return nil
}

// Run consumes the provider's change feed until ctx is done.
func (s *Selector) Run(ctx context.Context, changes <-chan Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-changes:
			if !ok {
				return
			}
			if err := s.Apply(ctx, c.Identity); err != nil {
				slog.ErrorContext(ctx, "Tier switch failed", "error", err)
			}
		}
	}
}

// Current reports the active identity, empty while anonymous.
func (s *Selector) Current() (uid string, signedIn bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uid, s.uid != ""
}

func (s *Selector) tierFor(uid string) store.RecordStore {
	if uid == "" {
		return s.local
	}
	return s.remote(uid)
}

func stateName(uid string) string {
	if uid == "" {
		return "anonymous"
	}
	return "identified:" + uid
}
