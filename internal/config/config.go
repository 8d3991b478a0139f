// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported collaborator selections
const (
	LLMProviderNone   = ""
	LLMProviderClaude = "claude"
	LLMProviderGemini = "gemini"

	MarketDataNative = "native"
	MarketDataQuote  = "quote"
)

// DefaultCORSOrigins are the local frontend dev servers allowed by default.
var DefaultCORSOrigins = []string{
	"http://localhost:5173", // Vite dev server
	"http://localhost:3000",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:3000",
}

// Config holds application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogPretty   bool
	DevMode     bool
	CORSOrigins []string

	LLM        LLMConfig
	MarketData MarketDataConfig

	// CacheResetSchedule is a cron expression; empty keeps the symbol cache for the process lifetime.
	CacheResetSchedule string
}

// LLMConfig configures the optional text-understanding / text-generation provider
type LLMConfig struct {
	Provider        string // "", "claude" or "gemini"
	AnthropicAPIKey string
	GeminiAPIKey    string
	ExtractionModel string
	ChatModel       string
	Timeout         time.Duration
}

// MarketDataConfig configures the market-data provider
type MarketDataConfig struct {
	Provider          string // "native" (go-yfinance) or "quote" (raw quote endpoint)
	QuoteURL          string
	Timeout           time.Duration
	RequestsPerSecond int
}

// Enabled reports whether an LLM provider has been selected.
func (c LLMConfig) Enabled() bool {
	return c.Provider != LLMProviderNone
}

// APIKey returns the key matching the selected provider.
func (c LLMConfig) APIKey() string {
	switch c.Provider {
	case LLMProviderClaude:
		return c.AnthropicAPIKey
	case LLMProviderGemini:
		return c.GeminiAPIKey
	default:
		return ""
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds the configuration from the current environment without touching .env files.
func FromEnv() (*Config, error) {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", LLMProviderNone))

	cfg := &Config{
		Port:        getEnvAsInt("GO_PORT", 8000),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPretty:   getEnvAsBool("LOG_PRETTY", true),
		DevMode:     getEnvAsBool("DEV_MODE", false),
		CORSOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", DefaultCORSOrigins),
		LLM: LLMConfig{
			Provider:        provider,
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			ExtractionModel: getEnv("LLM_EXTRACTION_MODEL", defaultExtractionModel(provider)),
			ChatModel:       getEnv("LLM_CHAT_MODEL", defaultChatModel(provider)),
			Timeout:         getEnvAsDuration("LLM_TIMEOUT", 15*time.Second),
		},
		MarketData: MarketDataConfig{
			Provider:          strings.ToLower(getEnv("MARKET_DATA_PROVIDER", MarketDataNative)),
			QuoteURL:          getEnv("YAHOO_QUOTE_URL", "https://query1.finance.yahoo.com/v7/finance/quote"),
			Timeout:           getEnvAsDuration("MARKET_DATA_TIMEOUT", 20*time.Second),
			RequestsPerSecond: getEnvAsInt("MARKET_DATA_RPS", 2),
		},
		CacheResetSchedule: getEnv("CACHE_RESET_SCHEDULE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.LLM.Provider {
	case LLMProviderNone, LLMProviderClaude, LLMProviderGemini:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (expected claude or gemini)", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}

	switch c.MarketData.Provider {
	case MarketDataNative, MarketDataQuote:
	default:
		return fmt.Errorf("unknown MARKET_DATA_PROVIDER %q (expected native or quote)", c.MarketData.Provider)
	}
	if c.MarketData.Timeout <= 0 {
		return fmt.Errorf("MARKET_DATA_TIMEOUT must be positive")
	}
	if c.MarketData.RequestsPerSecond <= 0 {
		return fmt.Errorf("MARKET_DATA_RPS must be positive")
	}

	// Note: a missing API key is not fatal; the LLM paths fall back to deterministic behavior.
	return nil
}

func defaultExtractionModel(provider string) string {
	switch provider {
	case LLMProviderClaude:
		return "claude-3-5-haiku-latest"
	case LLMProviderGemini:
		return "gemini-2.0-flash"
	default:
		return ""
	}
}

func defaultChatModel(provider string) string {
	switch provider {
	case LLMProviderClaude:
		return "claude-sonnet-4-20250514"
	case LLMProviderGemini:
		return "gemini-2.5-flash"
	default:
		return ""
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	for _, v := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
