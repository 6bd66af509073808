package ports

import (
	"context"

	"github.com/joshbarros/auth-gateway/internal/core/domain"
)

// Identity is the authenticated caller derived from a validated session
// token, after its claims have been re-checked against the credential store.
type Identity struct {
	Username      string
	Role          string
	UpstreamToken string
}

// AuthService issues session tokens and validates them on later requests.
type AuthService interface {
	// Login verifies local credentials, exchanges them for an upstream
	// credential and mints a composite session token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)

	// Authenticate decodes a session token and resolves it to a live
	// identity, re-checking role and active status against the store.
	Authenticate(ctx context.Context, rawToken string) (*Identity, error)
}
