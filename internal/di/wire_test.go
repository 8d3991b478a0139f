package di

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/comps/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port: 8000,
		LLM: config.LLMConfig{
			Timeout: time.Second,
		},
		MarketData: config.MarketDataConfig{
			Provider:          config.MarketDataNative,
			Timeout:           time.Second,
			RequestsPerSecond: 2,
		},
	}
}

func TestWire(t *testing.T) {
	container, err := Wire(context.Background(), testConfig(), zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, container)

	assert.Equal(t, "yahoo-native", container.MarketData.Name())
	assert.Nil(t, container.TextProvider)
	assert.NotNil(t, container.SymbolCache)
	assert.NotNil(t, container.Gateway)
	assert.NotNil(t, container.Pipeline)
	assert.NotNil(t, container.Responder)
	assert.False(t, container.Resolver.LLMEnabled())
	assert.False(t, container.Responder.LLMEnabled())
	assert.NotNil(t, container.CacheResetJob)
	assert.Equal(t, 0, container.Scheduler.Jobs())
}

func TestWire_QuoteProviderAndSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.MarketData.Provider = config.MarketDataQuote
	cfg.MarketData.QuoteURL = "http://127.0.0.1:1/quote"
	cfg.CacheResetSchedule = "@daily"

	container, err := Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "yahoo-quote", container.MarketData.Name())
	assert.Equal(t, 1, container.Scheduler.Jobs())
}

func TestWire_LLMEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.Provider = config.LLMProviderClaude
	cfg.LLM.AnthropicAPIKey = "sk-test"
	cfg.LLM.ExtractionModel = "extract-model"
	cfg.LLM.ChatModel = "chat-model"

	container, err := Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.NotNil(t, container.TextProvider)
	assert.True(t, container.Resolver.LLMEnabled())
	assert.True(t, container.Responder.LLMEnabled())
}

func TestWire_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{"unknown market data provider", func(cfg *config.Config) { cfg.MarketData.Provider = "bloomberg" }},
		{"invalid schedule", func(cfg *config.Config) { cfg.CacheResetSchedule = "whenever" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)

			_, err := Wire(context.Background(), cfg, zerolog.Nop())
			assert.Error(t, err)
		})
	}
}
