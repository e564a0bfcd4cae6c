package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by providers that have no credential.
var ErrNotConfigured = errors.New("llm: no api key configured")

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
