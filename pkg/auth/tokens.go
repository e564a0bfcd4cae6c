package auth

import "context"

// TokenGenerator abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// TokenVerifier turns a token back into the session it was issued for.
// It returns ErrInvalidToken for expired, forged or malformed tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Session, error)
}

// IdentityProvider verifies a credential issued by a third party, such as a
// Google ID token.
type IdentityProvider interface {
	Name() Provider
	Verify(ctx context.Context, credential string) (Identity, error)
}
