// Package auth owns accounts: sign-up/sign-in over a users store, API
// tokens, and the client-side session that views subscribe to.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Account identifies a signed-in user. The rest of the app only needs the ID
// to scope store queries; the email is carried for display.
type Account struct {
	ID    uuid.UUID
	Email string
}

// Gateway is the auth surface the UI talks to. Session implements it; views
// never reach past it to the service or store.
type Gateway interface {
	SignUp(ctx context.Context, email, password string) (*Account, error)
	SignIn(ctx context.Context, email, password string) (*Account, error)
	SignOut()
	CurrentAccount() *Account
	OnAccountChanged(cb func(*Account)) (unsubscribe func())
}

type accountCtxKey struct{}

// NewContext attaches the account to the context. Used by the HTTP bearer
// middleware so handlers can scope queries.
func NewContext(ctx context.Context, acct *Account) context.Context {
	return context.WithValue(ctx, accountCtxKey{}, acct)
}

// FromContext returns the account attached by NewContext, if any.
func FromContext(ctx context.Context) (*Account, bool) {
	acct, ok := ctx.Value(accountCtxKey{}).(*Account)
	return acct, ok
}
