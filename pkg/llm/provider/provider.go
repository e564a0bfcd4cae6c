// Package provider picks the chat model configured for the process.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerpilot/careerpilot/pkg/config"
	"github.com/careerpilot/careerpilot/pkg/llm"
	"github.com/careerpilot/careerpilot/pkg/llm/gemini"
	"github.com/careerpilot/careerpilot/pkg/llm/openrouter"
)

// CredentialEnv names the environment variable holding the API key of the
// provider selected by cfg.
func CredentialEnv(cfg config.Config) string {
	if strings.EqualFold(strings.TrimSpace(cfg.LLMProvider), "openrouter") {
		return "OPENROUTER_API_KEY"
	}
	return "GEMINI_API_KEY"
}

// New returns the chat model named by cfg.LLMProvider. A missing credential
// yields llm.ErrNotConfigured and a nil model.
func New(ctx context.Context, cfg config.Config) (llm.ChatModel, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "", "gemini":
		c, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "openrouter":
		if cfg.OpenRouterAPIKey == "" {
			return nil, llm.ErrNotConfigured
		}
		return openrouter.New(cfg.OpenRouterAPIKey, cfg.OpenRouterBase, cfg.OpenRouterModel, cfg.OpenRouterAppTitle, cfg.OpenRouterReferer), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}
