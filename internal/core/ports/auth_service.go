package ports

import (
	"context"

	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// RegisterInput carries the registration payload. Role defaults to student
// when empty and is fixed for the lifetime of the account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService defines registration, login, and profile lookup.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID uint) (*domain.User, error)
}
