package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// User is a credential entry for the in-memory provider.
type User struct {
	Email    string
	Password string
	Name     string
}

// StaticProvider is an in-process Provider backed by a fixed credential
// table. It stands in for the external identity service in development and
// tests; UIDs are minted once at construction and stay stable for the
// provider's lifetime.
type StaticProvider struct {
	mu      sync.Mutex
	users   map[string]User   // by lowercased email
	uids    map[string]string // email -> uid
	current *Identity
	changes chan Change
}

func NewStaticProvider(users []User) *StaticProvider {
	p := &StaticProvider{
		users:   make(map[string]User, len(users)),
		uids:    make(map[string]string, len(users)),
		changes: make(chan Change, 8),
	}
	for _, u := range users {
		key := strings.ToLower(strings.TrimSpace(u.Email))
		p.users[key] = u
		p.uids[key] = uuid.NewString()
	}
	return p
}

func (p *StaticProvider) SignIn(_ context.Context, email, password string) (Identity, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	p.mu.Lock()
	defer p.mu.Unlock()

	u, ok := p.users[key]
	if !ok || u.Password != password {
		return Identity{}, fmt.Errorf("%w: bad credentials for %s", ErrAuthFailed, email)
	}

	id := Identity{UID: p.uids[key], Email: u.Email, Name: u.Name}
	p.current = &id
	p.emit(Change{Identity: &id})
	return id, nil
}

func (p *StaticProvider) SignOut(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil
	}
	p.current = nil
	p.emit(Change{})
	return nil
}

func (p *StaticProvider) Changes() <-chan Change {
	return p.changes
}

// emit never blocks the provider on a slow consumer.
func (p *StaticProvider) emit(c Change) {
	select {
	case p.changes <- c:
	default:
	}
}
