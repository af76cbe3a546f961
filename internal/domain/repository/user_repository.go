package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByResetToken returns the user whose reset hash matches and has not expired at now.
	GetByResetToken(ctx context.Context, hash string, now time.Time) (*entity.User, error)
	// GetByConfirmToken returns the unconfirmed user holding hash.
	GetByConfirmToken(ctx context.Context, hash string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
