package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provider names how a user proves their identity.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGoogle   Provider = "google"
)

// User is a domain entity representing a system user.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Provider     Provider
	CreatedAt    time.Time
}

// Session is the signed-in identity. It is the only thing report
// operations are authorized by.
type Session struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DisplayName is the full name, or the local part of the email when no name
// was given at sign-up.
func (s Session) DisplayName() string {
	if name := strings.TrimSpace(s.FullName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(s.Email, "@")
	return local
}

// Identity is what a third-party provider vouches for.
type Identity struct {
	Subject       string
	Email         string
	FullName      string
	EmailVerified bool
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
