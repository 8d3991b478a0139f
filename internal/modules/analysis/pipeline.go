// Package analysis turns a free-text query into a comps table: resolve tickers,
// fetch their financials and compute valuation multiples.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/domain"
	"github.com/aristath/comps/internal/modules/multiples"
	"github.com/aristath/comps/internal/modules/tickers"
)

// ErrEmptyInput is returned for empty or whitespace-only queries.
var ErrEmptyInput = errors.New("text input is required")

// NoTickersMessage explains an empty result when nothing in the query looked like a company.
const NoTickersMessage = "No valid tickers found in the input text. Try mentioning specific stock symbols (like AAPL, MSFT) or company names (like Apple, Microsoft)."

// UpstreamError means tickers were resolved but no financial data could be loaded for any of them.
// Callers should treat it as retryable.
type UpstreamError struct {
	Tickers []string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Failed to load data from Yahoo Finance for tickers: %s. This may be due to rate limits or API restrictions. Please try again in a few minutes.",
		strings.Join(e.Tickers, ", "))
}

// TickerResolver resolves the symbols mentioned in a query
type TickerResolver interface {
	Resolve(ctx context.Context, text string) tickers.Resolution
}

// FinancialsFetcher loads fact sheets for symbols, omitting those that fail
type FinancialsFetcher interface {
	Fetch(ctx context.Context, symbols []string) map[string]domain.RawFinancials
}

// Result is the outcome of one analysis
type Result struct {
	ID      uuid.UUID
	Rows    []domain.MetricRow
	Method  domain.ExtractionMethod
	Message string
	Tickers []string
	Summary domain.PeerSummary
}

// Pipeline runs analyses
type Pipeline struct {
	resolver TickerResolver
	fetcher  FinancialsFetcher
	log      zerolog.Logger
}

// NewPipeline creates an analysis pipeline
func NewPipeline(resolver TickerResolver, fetcher FinancialsFetcher, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		fetcher:  fetcher,
		log:      log.With().Str("component", "analysis_pipeline").Logger(),
	}
}

// Analyze runs the full query-to-table flow.
//
// Errors: ErrEmptyInput for blank text, *UpstreamError when no symbol could be loaded.
// A query without recognizable tickers is not an error; it yields an empty Result
// carrying NoTickersMessage.
func (p *Pipeline) Analyze(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	result := Result{
		ID:   uuid.New(),
		Rows: []domain.MetricRow{},
	}

	resolution := p.resolver.Resolve(ctx, text)
	result.Method = resolution.Method
	result.Tickers = resolution.Tickers

	if len(resolution.Tickers) == 0 {
		p.log.Info().Str("analysis_id", result.ID.String()).Msg("No tickers found in input")
		result.Message = NoTickersMessage
		return result, nil
	}

	p.log.Info().
		Str("analysis_id", result.ID.String()).
		Str("method", string(resolution.Method)).
		Strs("tickers", resolution.Tickers).
		Msg("Resolved tickers")

	fetched := p.fetcher.Fetch(ctx, resolution.Tickers)

	processed := make([]string, 0, len(fetched))
	for _, symbol := range resolution.Tickers {
		raw, ok := fetched[symbol]
		if !ok {
			continue
		}

		row, err := domain.NewMetricRow(raw, multiples.Compute(raw))
		if err != nil {
			p.log.Warn().Err(err).Str("symbol", symbol).Msg("Discarding invalid row")
			continue
		}

		result.Rows = append(result.Rows, row)
		processed = append(processed, row.Ticker)
	}

	if len(result.Rows) == 0 {
		return Result{}, &UpstreamError{Tickers: resolution.Tickers}
	}

	result.Summary = multiples.Summarize(result.Rows)
	result.Message = fmt.Sprintf("Successfully analyzed %d tickers using %s extraction: %s",
		len(result.Rows), resolution.Method, strings.Join(processed, ", "))

	p.log.Info().
		Str("analysis_id", result.ID.String()).
		Int("rows", len(result.Rows)).
		Int("requested", len(resolution.Tickers)).
		Msg("Analysis completed")

	return result, nil
}
