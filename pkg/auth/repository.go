package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound               = errors.New("not found")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrWeakPassword           = errors.New("password must be at least 6 characters")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrProviderNotConfigured  = errors.New("sign-in provider is not configured")
	ErrUnverifiedProviderMail = errors.New("provider did not verify the email address")
)

// UserRepository abstracts persistence concerns from the domain layer.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
}
