package ports

import (
	"context"

	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByEmail matches case-insensitively (emails are stored lowercased).
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
