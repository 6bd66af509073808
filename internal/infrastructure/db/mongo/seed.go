package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/joshbarros/auth-gateway/internal/core/domain"
)

// seedUsers are the development accounts created on first startup.
var seedUsers = []struct {
	Username string
	Password string
	Role     string
}{
	{Username: "user", Password: "L0XuwPOdS5U", Role: domain.RoleUser},
	{Username: "admin", Password: "JKSipm0YH", Role: domain.RoleAdmin},
}

// Seed provisions the development accounts when they do not exist yet.
// Existing records are left untouched, so a restart never resets credentials.
func Seed(ctx context.Context, repo *MongoUserRepository) error {
	for _, su := range seedUsers {
		if _, err := repo.FindByUsername(ctx, su.Username); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("seed lookup %q: %w", su.Username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed hash %q: %w", su.Username, err)
		}

		now := time.Now().UTC()
		_, err = repo.Create(ctx, &domain.User{
			Username:     su.Username,
			PasswordHash: string(hash),
			Role:         su.Role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil && !errors.Is(err, domain.ErrUserExists) {
			return fmt.Errorf("seed create %q: %w", su.Username, err)
		}
	}
	return nil
}
