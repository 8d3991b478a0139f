package tickers

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/domain"
)

// Resolution is the outcome of ticker resolution for one query
type Resolution struct {
	Tickers []string
	Method  domain.ExtractionMethod
}

// Resolver picks exactly one extraction method per query: delegated when it
// produces symbols, pattern-based otherwise.
type Resolver struct {
	delegated *DelegatedExtractor
	pattern   *PatternExtractor
	log       zerolog.Logger
}

// NewResolver creates a resolver. delegated may be nil.
func NewResolver(delegated *DelegatedExtractor, pattern *PatternExtractor, log zerolog.Logger) *Resolver {
	if pattern == nil {
		pattern = NewPatternExtractor()
	}
	return &Resolver{
		delegated: delegated,
		pattern:   pattern,
		log:       log.With().Str("component", "ticker_resolver").Logger(),
	}
}

// LLMEnabled reports whether the delegated strategy is configured.
func (r *Resolver) LLMEnabled() bool {
	return r.delegated.Available()
}

// Resolve returns the tickers in text and the method that produced them.
func (r *Resolver) Resolve(ctx context.Context, text string) Resolution {
	if r.delegated.Available() {
		result := r.delegated.Extract(ctx, text)
		if result.Outcome == OutcomeOK {
			return Resolution{Tickers: result.Tickers, Method: domain.ExtractionLLM}
		}

		event := r.log.Warn()
		if result.Err != nil {
			event = event.Err(result.Err)
		}
		event.Str("outcome", string(result.Outcome)).Msg("LLM ticker extraction unusable, falling back to regex")
	}

	tickers := r.pattern.Extract(text)
	r.log.Debug().Strs("tickers", tickers).Msg("Regex extracted tickers")

	return Resolution{Tickers: tickers, Method: domain.ExtractionRegex}
}
