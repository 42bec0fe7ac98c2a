package services

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrIdentityExists     = errors.New("identity already registered")
)

// SessionTokens is what the identity provider hands back on sign-in.
type SessionTokens struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type AuthenticatedIdentity struct {
	Identity
	Session SessionTokens
}

// IdentityGateway wraps the external identity provider.
//
// Authenticate is attempted exactly once per call. InvalidateSession is
// best-effort; callers log its error and carry on.
type IdentityGateway interface {
	Authenticate(ctx context.Context, email, password string) (*AuthenticatedIdentity, error)
	InvalidateSession(ctx context.Context, session SessionTokens) error
	ResolveSession(ctx context.Context, accessToken string) (*Identity, error)
	SignUp(ctx context.Context, email, password string) (*Identity, error)
}
