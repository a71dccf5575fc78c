// Package auth abstracts the external identity provider. The app works with
// a signed-in Identity or proceeds as a guest.
package auth

import (
	"context"
	"errors"
	"time"
)

// Identity describes a signed-in user.
type Identity struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
}

// Provider is the identity service surface the app consumes. A nil identity
// from SignIn or the state callback means signed out.
type Provider interface {
	SignIn(ctx context.Context) (*Identity, error)
	SignOut(ctx context.Context) error
	// OnAuthStateChange registers a callback fired with the current state
	// immediately and on every later change. The returned func cancels the
	// registration and is safe to call more than once.
	OnAuthStateChange(fn func(*Identity)) (unsubscribe func())
}

// Sentinel sign-in failures, each mapping to one user-facing category.
var (
	ErrFlowBlocked        = errors.New("auth: authorization flow blocked")
	ErrFlowCanceled       = errors.New("auth: authorization canceled by user")
	ErrNetwork            = errors.New("auth: network failure")
	ErrUnauthorizedClient = errors.New("auth: client not authorized")
	ErrInternal           = errors.New("auth: internal error")
)

// Readable maps a sign-in error to the fixed set of human-readable messages
// shown to the user.
func Readable(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFlowBlocked):
		return "The sign-in flow could not be opened. Please allow it and try again."
	case errors.Is(err, ErrFlowCanceled):
		return "Sign-in was canceled. Please try again."
	case errors.Is(err, ErrNetwork):
		return "Network error. Please check your internet connection."
	case errors.Is(err, ErrUnauthorizedClient):
		return "This client is not authorized for sign-in. Please contact the administrator."
	case errors.Is(err, ErrInternal):
		return "An internal error occurred. Please try again later."
	default:
		return "An unexpected error occurred during sign-in."
	}
}

// WaitForState blocks until the provider reports a definitive state or the
// timeout elapses. On timeout the app proceeds as signed out rather than
// hanging.
func WaitForState(ctx context.Context, p Provider, timeout time.Duration) *Identity {
	ch := make(chan *Identity, 1)
	unsubscribe := p.OnAuthStateChange(func(id *Identity) {
		select {
		case ch <- id:
		default:
		}
	})
	defer unsubscribe()

	select {
	case id := <-ch:
		return id
	case <-time.After(timeout):
		return nil
	case <-ctx.Done():
		return nil
	}
}

// GuestProvider is the no-account mode: always signed out.
type GuestProvider struct{}

func (GuestProvider) SignIn(context.Context) (*Identity, error) { return nil, nil }

func (GuestProvider) SignOut(context.Context) error { return nil }

func (GuestProvider) OnAuthStateChange(fn func(*Identity)) func() {
	fn(nil)
	return func() {}
}
