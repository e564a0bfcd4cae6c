package workflow

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/auth"
)

// Credentials is the content of the sign-in form.
type Credentials struct {
	Email    string
	Password string
	// FullName is only used when signing up.
	FullName string
}

// SetAuthMode switches between login and sign-up and clears messages.
func (c *Controller) SetAuthMode(m AuthMode) {
	c.mu.Lock()
	c.authForm = AuthForm{Mode: m}
	c.mu.Unlock()
	c.notify()
}

// SubmitAuth logs in or signs up depending on the form mode. Failures are
// shown on the form and returned; nothing is retried. A successful sign-up
// does not sign in: the form switches to login with a success message.
func (c *Controller) SubmitAuth(ctx context.Context, cred Credentials) error {
	c.mu.Lock()
	if c.authForm.Busy {
		c.mu.Unlock()
		return nil
	}
	mode := c.authForm.Mode
	c.authForm.Error, c.authForm.Success = "", ""
	if mode == AuthSignUp && len(cred.Password) < auth.MinPasswordLength {
		c.authForm.Error = "Password must be at least 6 characters."
		c.mu.Unlock()
		c.notify()
		return auth.ErrWeakPassword
	}
	c.authForm.Busy = true
	c.mu.Unlock()
	c.notify()

	email := strings.TrimSpace(cred.Email)
	var err error
	if mode == AuthSignUp {
		err = c.auth.SignUp(ctx, email, cred.Password, strings.TrimSpace(cred.FullName))
	} else {
		_, err = c.auth.SignIn(ctx, email, cred.Password)
	}

	c.mu.Lock()
	c.authForm.Busy = false
	switch {
	case err != nil:
		c.authForm.Error = authMessage(mode, err)
	case mode == AuthSignUp:
		c.authForm = AuthForm{Mode: AuthLogin, Success: MsgSignedUp}
	}
	c.mu.Unlock()
	if err != nil {
		c.log.Info("authentication failed", zap.Stringer("mode", mode), zap.Error(err))
	}
	c.notify()
	return err
}

// SignInWithProvider signs in with a third-party credential such as a Google
// ID token.
func (c *Controller) SignInWithProvider(ctx context.Context, provider auth.Provider, credential string) error {
	c.mu.Lock()
	c.authForm.Error, c.authForm.Success = "", ""
	c.authForm.Busy = true
	c.mu.Unlock()
	c.notify()

	_, err := c.auth.SignInWithProvider(ctx, provider, credential)

	c.mu.Lock()
	c.authForm.Busy = false
	if err != nil {
		c.authForm.Error = authMessage(AuthLogin, err)
	}
	c.mu.Unlock()
	c.notify()
	return err
}

// SignOut signs out. The session watcher resets the pages; a failure to
// forget the stored token is logged but the local state is reset anyway.
func (c *Controller) SignOut(ctx context.Context) error {
	err := c.auth.SignOut(ctx)
	if err != nil {
		c.log.Warn("sign out failed", zap.Error(err))
	}
	return err
}

func authMessage(mode AuthMode, err error) string {
	switch {
	case errors.Is(err, auth.ErrWeakPassword):
		return "Password must be at least 6 characters."
	case errors.Is(err, auth.ErrUserAlreadyExists):
		return "An account with this email already exists."
	case errors.Is(err, auth.ErrUnverifiedProviderMail):
		return "Your Google account email is not verified."
	case errors.Is(err, auth.ErrProviderNotConfigured):
		return "Google sign-in is not configured."
	case mode == AuthSignUp && errors.Is(err, auth.ErrInvalidCredentials):
		return "Please enter a valid email address."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password."
	case mode == AuthSignUp:
		return "Sign up failed. Please try again."
	default:
		return "Login failed. Check your credentials."
	}
}
