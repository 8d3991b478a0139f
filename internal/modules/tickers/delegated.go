package tickers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/domain"
)

// Outcome names the result of a delegated extraction attempt
type Outcome string

const (
	// OutcomeOK means at least one valid symbol was returned
	OutcomeOK Outcome = "ok"
	// OutcomeUnavailable means no provider is configured
	OutcomeUnavailable Outcome = "unavailable"
	// OutcomeProviderError means the provider call failed or timed out
	OutcomeProviderError Outcome = "provider_error"
	// OutcomeMalformed means the reply was not the expected JSON object
	OutcomeMalformed Outcome = "malformed"
	// OutcomeEmpty means the reply parsed but held no valid symbol
	OutcomeEmpty Outcome = "empty"
)

const extractionSystemPrompt = `You are a financial analyst assistant that extracts stock ticker symbols from user queries.

Your task:
1. Identify all companies mentioned directly or indirectly in the user's text
2. Convert company names to their official stock ticker symbols traded on US exchanges
3. Return ONLY the official ticker symbols, never company names

Rules:
- Return a JSON object with a "tickers" array containing ONLY official ticker symbols
- Convert company names to tickers: Apple -> AAPL, Microsoft -> MSFT, Google -> GOOGL, etc.
- Include both explicitly mentioned tickers and company names converted to tickers
- Only return valid US stock tickers (1-5 uppercase letters)
- Maximum 10 tickers
- If no valid companies/tickers found, return {"tickers": []}

Examples:
Input: "Compare Apple and Microsoft"
Output: {"tickers": ["AAPL", "MSFT"]}

Input: "What's the valuation of NVDA vs AMD?"
Output: {"tickers": ["NVDA", "AMD"]}

Input: "Show me FAANG stocks"
Output: {"tickers": ["META", "AAPL", "AMZN", "NFLX", "GOOGL"]}

Input: "Tesla compared to Ford and GM"
Output: {"tickers": ["TSLA", "F", "GM"]}

Input: "What's Tesla's EV/EBITDA vs Ford?"
Output: {"tickers": ["TSLA", "F"]}

IMPORTANT: Always return official ticker symbols, never company names or partial names.`

// Extraction is the result of one delegated attempt
type Extraction struct {
	Tickers []string
	Outcome Outcome
	Err     error // Set for OutcomeProviderError and OutcomeMalformed
}

// DelegatedExtractor asks a text-understanding provider to map names and symbols to tickers.
type DelegatedExtractor struct {
	provider domain.TextProvider
	model    string
	timeout  time.Duration
	log      zerolog.Logger
}

// NewDelegatedExtractor creates a delegated extractor. provider may be nil, in which
// case every call reports OutcomeUnavailable.
func NewDelegatedExtractor(provider domain.TextProvider, model string, timeout time.Duration, log zerolog.Logger) *DelegatedExtractor {
	return &DelegatedExtractor{
		provider: provider,
		model:    model,
		timeout:  timeout,
		log:      log.With().Str("component", "ticker_extractor_llm").Logger(),
	}
}

// Available reports whether a provider is configured.
func (d *DelegatedExtractor) Available() bool {
	return d != nil && d.provider != nil
}

// Extract runs one bounded provider call and classifies the result.
func (d *DelegatedExtractor) Extract(ctx context.Context, text string) Extraction {
	if !d.Available() {
		return Extraction{Outcome: OutcomeUnavailable}
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	reply, err := d.provider.Generate(ctx, domain.TextRequest{
		System:      extractionSystemPrompt,
		Prompt:      fmt.Sprintf("Extract stock tickers from this text: %q", text),
		Model:       d.model,
		Temperature: 0.1,
		MaxTokens:   200,
		JSON:        true,
	})
	if err != nil {
		return Extraction{Outcome: OutcomeProviderError, Err: err}
	}

	symbols, err := ParseTickerReply(reply)
	if err != nil {
		return Extraction{Outcome: OutcomeMalformed, Err: err}
	}

	tickers := Normalize(symbols)
	if len(tickers) == 0 {
		return Extraction{Outcome: OutcomeEmpty}
	}

	d.log.Info().
		Strs("tickers", tickers).
		Str("input", truncate(text, 50)).
		Msg("LLM extracted tickers")

	return Extraction{Tickers: tickers, Outcome: OutcomeOK}
}

// ParseTickerReply decodes {"tickers": [...]} from a provider reply. Markdown code
// fences and prose around the object are tolerated; non-string entries are stringified.
func ParseTickerReply(reply string) ([]string, error) {
	body := strings.TrimSpace(reply)
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply %q", truncate(body, 80))
	}

	var parsed struct {
		Tickers []interface{} `json:"tickers"`
	}
	if err := json.Unmarshal([]byte(body[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse ticker reply: %w", err)
	}

	symbols := make([]string, 0, len(parsed.Tickers))
	for _, t := range parsed.Tickers {
		if t == nil {
			continue
		}
		symbols = append(symbols, fmt.Sprint(t))
	}
	return symbols, nil
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
