package repository

import (
	"context"

	"github.com/inkpost/inkpost/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ExistsByUsernameOrEmail backs the single registration collision check:
	// a match on either field counts as an existing user.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
