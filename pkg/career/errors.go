package career

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidProfile is returned when the profile misses a required field.
var ErrInvalidProfile = errors.New("profile is incomplete")

// DefaultCredentialName is the key reported when a ConfigurationError does
// not name one.
const DefaultCredentialName = "GEMINI_API_KEY"

// ConfigurationError means no credential is configured for the model backend.
// It is detected before any request is issued. Key names the missing
// environment variable.
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) credential() string {
	if e.Key == "" {
		return DefaultCredentialName
	}
	return e.Key
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return "career generation is not configured: " + e.Err.Error()
	}
	return "career generation is not configured"
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// BackendError wraps a failure of the remote model call itself.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string { return "model backend: " + e.Err.Error() }

func (e *BackendError) Unwrap() error { return e.Err }

// Timeout reports whether the call ran past its deadline.
func (e *BackendError) Timeout() bool { return errors.Is(e.Err, context.DeadlineExceeded) }

// Canceled reports whether the caller aborted the call.
func (e *BackendError) Canceled() bool { return errors.Is(e.Err, context.Canceled) }

// ParseError means the model answered but not with the expected JSON document.
// Raw holds the full response text.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse AI response: %v", e.Err)
	}
	return "failed to parse AI response"
}

func (e *ParseError) Unwrap() error { return e.Err }

// UserMessage maps a Generate error to the text shown in the form's error box.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		cfgErr     *ConfigurationError
		backendErr *BackendError
		parseErr   *ParseError
	)
	switch {
	case errors.As(err, &cfgErr):
		return fmt.Sprintf("The AI service is not configured. Add %s to your environment or .env file and try again.", cfgErr.credential())
	case errors.Is(err, ErrInvalidProfile):
		return "Please fill in your name, education, skills and interests before generating."
	case errors.As(err, &backendErr) && backendErr.Timeout():
		return "The AI service took too long to respond. Please try again."
	case errors.As(err, &backendErr) && backendErr.Canceled():
		return "Generation was cancelled."
	case errors.As(err, &backendErr):
		return "Could not reach the AI service. Please check your connection and try again."
	case errors.As(err, &parseErr):
		return "The AI returned an unexpected response. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
