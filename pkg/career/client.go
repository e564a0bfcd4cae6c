package career

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/llm"
	"github.com/careerpilot/careerpilot/pkg/profile"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 90 * time.Second

// Generator produces recommendations for a profile.
type Generator interface {
	Generate(ctx context.Context, p profile.Profile) ([]Recommendation, error)
}

// Client is the Generator backed by a chat model.
type Client struct {
	model      llm.ChatModel
	timeout    time.Duration
	log        *zap.Logger
	credential string
}

type Option func(*Client)

// WithTimeout overrides DefaultTimeout. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithCredentialName names the environment variable that holds the model's
// API key. It is reported in ConfigurationError.
func WithCredentialName(name string) Option {
	return func(c *Client) { c.credential = name }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient wraps model. A nil model is allowed: every call then fails with
// a ConfigurationError, which is how a missing API key surfaces.
func NewClient(model llm.ChatModel, opts ...Option) *Client {
	c := &Client{model: model, timeout: DefaultTimeout, log: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Configured reports whether a model backend is available.
func (c *Client) Configured() bool { return c.model != nil }

// Generate asks the model for career recommendations. Errors are one of
// *ConfigurationError, *BackendError, *ParseError or ErrInvalidProfile.
func (c *Client) Generate(ctx context.Context, p profile.Profile) ([]Recommendation, error) {
	if c.model == nil {
		return nil, &ConfigurationError{Key: c.credential, Err: llm.ErrNotConfigured}
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	system, user := BuildPrompt(p)
	started := time.Now()
	raw, err := c.model.Ask(ctx, system, user)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, &ConfigurationError{Key: c.credential, Err: err}
		}
		c.log.Warn("career generation failed",
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return nil, &BackendError{Err: err}
	}

	recs, err := ParseResponse(raw)
	if err != nil {
		c.log.Warn("unparseable model response",
			zap.Int("raw_len", len(raw)),
			zap.Error(err),
		)
		return nil, err
	}
	recs = Normalize(recs)
	c.log.Info("career recommendations generated",
		zap.Int("count", len(recs)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return recs, nil
}
