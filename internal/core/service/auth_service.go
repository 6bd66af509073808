package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/joshbarros/auth-gateway/internal/core/domain"
	"github.com/joshbarros/auth-gateway/internal/core/ports"
	"github.com/joshbarros/auth-gateway/internal/core/token"
)

// AuthService implements login and per-request authentication. It composes
// the credential store, the upstream client and the token codec; all
// dependencies are explicit constructor parameters.
type AuthService struct {
	repo     ports.UserRepository
	upstream ports.UpstreamClient
	codec    *token.Codec
	tokenTTL time.Duration
}

func NewAuthService(repo ports.UserRepository, upstream ports.UpstreamClient, codec *token.Codec, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &AuthService{repo: repo, upstream: upstream, codec: codec, tokenTTL: tokenTTL}
}

// Login verifies the credentials locally, exchanges them for an upstream
// credential, and mints a session token embedding both. The upstream
// credential is re-exchanged on every login; nothing is cached.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.verifyLogin(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	upstreamToken, err := s.upstream.ExchangeCredentials(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	claims := token.Claims{
		Role:          user.Role,
		UpstreamToken: upstreamToken,
	}
	claims.Subject = user.Username

	signed, err := s.codec.Encode(claims, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// Provision creates a user record with a bcrypt-hashed password. Used at
// provisioning/seeding time only; the request path never creates users.
func (s *AuthService) Provision(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// verifyLogin answers "does this username/password pair match an active
// user?". bcrypt's comparison is constant-time on the hash input.
func (s *AuthService) verifyLogin(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return user, nil
}

// Authenticate resolves a raw session token to a live identity. The role and
// active flag are re-read from the store on every call; the token's role
// claim is never trusted alone, so a stale token does not survive a role
// change.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*ports.Identity, error) {
	claims, err := s.codec.Decode(rawToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.Role != claims.Role {
		return nil, domain.ErrRoleMismatch
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return &ports.Identity{
		Username:      user.Username,
		Role:          user.Role,
		UpstreamToken: claims.UpstreamToken,
	}, nil
}
