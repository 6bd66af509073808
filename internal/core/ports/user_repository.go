package ports

import (
	"context"

	"github.com/joshbarros/auth-gateway/internal/core/domain"
)

// UserRepository is the credential store: a keyed lookup of provisioned user
// records. Implementations must be safe for concurrent readers.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, username, role string) error
}
