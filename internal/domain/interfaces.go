package domain

import "context"

// MarketDataProvider fetches a single-symbol info snapshot from an external market-data source.
// Implementations: yahoo.NativeClient (go-yfinance), yahoo.QuoteClient (raw quote endpoint).
type MarketDataProvider interface {
	// Info returns the provider's loosely typed record for symbol
	Info(ctx context.Context, symbol string) (InfoRecord, error)

	// Name identifies the provider in logs and status output
	Name() string
}

// TextRequest is a provider-agnostic prompt for the text-understanding / text-generation collaborator
type TextRequest struct {
	System      string
	Prompt      string
	Model       string  // Empty means the provider default
	Temperature float64 // Zero means the provider default
	MaxTokens   int
	JSON        bool // Ask the provider for a JSON-only response when it supports it
}

// TextProvider is an external LLM collaborator. It is untrusted: it can be slow,
// unavailable, or return malformed content, and callers must fall back accordingly.
type TextProvider interface {
	Generate(ctx context.Context, req TextRequest) (string, error)
	Name() string
}
