// Package identity models the external identity provider and the selector
// that maps identity state onto the authoritative record tier.
package identity

import (
	"context"
	"errors"
)

// ErrAuthFailed is the provider's failure condition, passed through untouched.
var ErrAuthFailed = errors.New("auth failed")

// Identity is an authenticated user as reported by the provider.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// Change is one event on the provider's feed. A nil Identity means the user
// signed out.
type Change struct {
	Identity *Identity
}

// Provider is the external authentication service. Protocol details are out
// of scope; the core only consumes the result and the change feed.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignOut(ctx context.Context) error

	// Changes emits a Change on every sign-in and sign-out.
	Changes() <-chan Change
}
