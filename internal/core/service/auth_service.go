package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursehub/enrollment-api/internal/core/domain"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// AuthService implements registration, login, and profile lookup.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a new account. The role defaults to student and is fixed
// at registration. Email uniqueness is case-insensitive: addresses are
// stored lowercased.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	ve := &domain.ValidationError{}

	username := strings.TrimSpace(input.Username)
	if len(username) < 3 {
		ve.Add("username", "Username must be at least 3 characters long.")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		ve.Add("email", "Enter a valid email address.")
	} else if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		ve.Add("email", "This email is already registered.")
	}

	if len(input.Password) < 8 {
		ve.Add("password", "Password must be at least 8 characters long.")
	}

	role := input.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if !role.Valid() {
		ve.Add("role", "Role must be one of: admin, instructor, student.")
	}

	if !ve.Empty() {
		return nil, ve
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login authenticates by username and returns a signed token plus the
// profile. Unknown users and bad passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile returns the user behind an authenticated actor.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
