package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	LoginWithProvider(ctx context.Context, provider Provider, credential string) (AuthResult, error)
	Me(ctx context.Context, userID uuid.UUID) (User, error)
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName"`
}

type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo      UserRepository
	tokens    TokenGenerator
	providers map[Provider]IdentityProvider
	validate  *validator.Validate
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenGenerator, providers ...IdentityProvider) AuthUseCase {
	s := &authService{
		repo:      repo,
		tokens:    tokens,
		providers: make(map[Provider]IdentityProvider, len(providers)),
		validate:  validator.New(),
	}
	for _, p := range providers {
		if p != nil {
			s.providers[p.Name()] = p
		}
	}
	return s
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	if err := s.validate.Struct(in); err != nil {
		return AuthResult{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if len(in.Password) < MinPasswordLength {
		return AuthResult{}, ErrWeakPassword
	}

	// If user exists, fail fast (best-effort check)
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	user := User{
		ID:           uuid.New(),
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: string(passwordHash),
		Provider:     ProviderPassword,
		CreatedAt:    time.Now().UTC(),
	}
	return s.issue(ctx, user, true)
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(ctx, user, false)
}

// LoginWithProvider signs in with a third-party credential, creating the
// account on first use. An existing password account with the same verified
// email is reused.
func (s *authService) LoginWithProvider(ctx context.Context, provider Provider, credential string) (AuthResult, error) {
	p, ok := s.providers[provider]
	if !ok {
		return AuthResult{}, ErrProviderNotConfigured
	}
	id, err := p.Verify(ctx, credential)
	if err != nil {
		return AuthResult{}, err
	}
	if !id.EmailVerified {
		return AuthResult{}, ErrUnverifiedProviderMail
	}
	email := strings.ToLower(strings.TrimSpace(id.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return s.issue(ctx, user, false)
	case errors.Is(err, ErrNotFound):
	default:
		return AuthResult{}, err
	}

	user = User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  strings.TrimSpace(id.FullName),
		Provider:  provider,
		CreatedAt: time.Now().UTC(),
	}
	return s.issue(ctx, user, true)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *authService) issue(ctx context.Context, user User, create bool) (AuthResult, error) {
	if create {
		if err := s.repo.Create(ctx, user); err != nil {
			return AuthResult{}, err
		}
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}
