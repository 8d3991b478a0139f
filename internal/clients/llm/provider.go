// Package llm provides text-generation providers for ticker extraction and chat.
package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/config"
	"github.com/aristath/comps/internal/domain"
)

const defaultMaxTokens = 1024

// NewProvider builds the provider selected by cfg. It returns nil when no provider
// is selected or the provider cannot be initialized, in which case callers use
// their deterministic paths.
func NewProvider(ctx context.Context, cfg config.LLMConfig, log zerolog.Logger) domain.TextProvider {
	log = log.With().Str("component", "llm").Logger()

	if !cfg.Enabled() {
		log.Info().Msg("No LLM provider configured, using regex extraction and rule-based chat")
		return nil
	}

	var (
		provider domain.TextProvider
		err      error
	)
	switch cfg.Provider {
	case config.LLMProviderClaude:
		provider, err = NewClaudeProvider(cfg.AnthropicAPIKey, cfg.ChatModel, log)
	case config.LLMProviderGemini:
		provider, err = NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.ChatModel, log)
	default:
		err = fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	if err != nil {
		log.Error().Err(err).Str("provider", cfg.Provider).Msg("LLM init failed, falling back to regex")
		return nil
	}

	log.Info().
		Str("provider", provider.Name()).
		Str("extraction_model", cfg.ExtractionModel).
		Str("chat_model", cfg.ChatModel).
		Bool("api_key_set", cfg.APIKey() != "").
		Msg("LLM provider initialized")

	return provider
}

func maxTokensOrDefault(n int) int {
	if n <= 0 {
		return defaultMaxTokens
	}
	return n
}

func modelOrDefault(model, fallback string) string {
	if model == "" {
		return fallback
	}
	return model
}
