// Package financials fetches per-symbol fact sheets from a market-data provider
// through an explicit, process-owned symbol cache.
package financials

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/comps/internal/domain"
	"github.com/rs/zerolog"
)

// Gateway turns a list of symbols into normalized fact sheets.
// A failure for one symbol never affects the others.
type Gateway struct {
	provider domain.MarketDataProvider
	cache    *SymbolCache
	timeout  time.Duration
	log      zerolog.Logger
}

// NewGateway creates a gateway. A nil cache gets a fresh one; a non-positive
// timeout leaves provider calls bounded only by the caller's context.
func NewGateway(provider domain.MarketDataProvider, cache *SymbolCache, timeout time.Duration, log zerolog.Logger) *Gateway {
	if cache == nil {
		cache = NewSymbolCache()
	}
	return &Gateway{
		provider: provider,
		cache:    cache,
		timeout:  timeout,
		log:      log.With().Str("component", "financials_gateway").Logger(),
	}
}

// Cache returns the cache owned by the gateway
func (g *Gateway) Cache() *SymbolCache {
	return g.cache
}

// Stats returns cache usage counters
func (g *Gateway) Stats() CacheStats {
	return g.cache.Stats()
}

// ProviderName returns the name of the underlying market-data provider
func (g *Gateway) ProviderName() string {
	if g.provider == nil {
		return ""
	}
	return g.provider.Name()
}

// Fetch returns fact sheets keyed by symbol for every symbol that could be loaded.
// Symbols that fail are logged and omitted, so the result may be empty.
func (g *Gateway) Fetch(ctx context.Context, symbols []string) map[string]domain.RawFinancials {
	results := make(map[string]domain.RawFinancials, len(symbols))

	for _, symbol := range symbols {
		if _, done := results[symbol]; done {
			continue
		}
		if err := ctx.Err(); err != nil {
			g.log.Warn().Err(err).Str("symbol", symbol).Msg("Fetch cancelled, returning partial results")
			break
		}

		if raw, ok := g.cache.Get(symbol); ok {
			g.log.Debug().Str("symbol", symbol).Msg("Cache hit")
			results[symbol] = raw
			continue
		}

		raw, err := g.fetchOne(ctx, symbol)
		if err != nil {
			g.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to load financial data, skipping")
			continue
		}

		g.cache.Put(raw)
		results[symbol] = raw
	}

	g.log.Info().
		Int("requested", len(symbols)).
		Int("loaded", len(results)).
		Msg("Financial data fetch completed")

	return results
}

// fetchOne loads and normalizes a single symbol. Provider panics are converted into errors.
func (g *Gateway) fetchOne(ctx context.Context, symbol string) (raw domain.RawFinancials, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()

	if g.provider == nil {
		return domain.RawFinancials{}, fmt.Errorf("no market data provider configured")
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	info, err := g.provider.Info(callCtx, symbol)
	if err != nil {
		return domain.RawFinancials{}, fmt.Errorf("%s info: %w", g.provider.Name(), err)
	}
	if !Sufficient(info) {
		return domain.RawFinancials{}, fmt.Errorf("insufficient data: %d fields", len(info))
	}

	return Normalize(symbol, info), nil
}
