// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"

	"github.com/careerpilot/careerpilot/pkg/auth"
)

type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// Verifier implements auth.IdentityProvider for Google ID tokens issued to
// clientID.
type Verifier struct {
	clientID string
	validate validateFunc
}

func New(clientID string) *Verifier {
	return &Verifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *Verifier) Name() auth.Provider { return auth.ProviderGoogle }

func (v *Verifier) Verify(ctx context.Context, credential string) (auth.Identity, error) {
	if v.clientID == "" {
		return auth.Identity{}, auth.ErrProviderNotConfigured
	}
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return auth.Identity{}, auth.ErrInvalidCredentials
	}
	payload, err := v.validate(ctx, credential, v.clientID)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %v", auth.ErrInvalidCredentials, err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return auth.Identity{}, fmt.Errorf("%w: token carries no email", auth.ErrInvalidCredentials)
	}
	return auth.Identity{
		Subject:       payload.Subject,
		Email:         email,
		FullName:      name,
		EmailVerified: emailVerified(payload.Claims["email_verified"]),
	}, nil
}

// Google sends email_verified as a bool, older tokens as a string.
func emailVerified(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(b, "true")
	default:
		return false
	}
}
