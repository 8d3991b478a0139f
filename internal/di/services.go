package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/clients/llm"
	"github.com/aristath/comps/internal/clients/yahoo"
	"github.com/aristath/comps/internal/config"
	"github.com/aristath/comps/internal/domain"
	"github.com/aristath/comps/internal/modules/analysis"
	"github.com/aristath/comps/internal/modules/chat"
	"github.com/aristath/comps/internal/modules/financials"
	"github.com/aristath/comps/internal/modules/tickers"
)

// InitializeClients creates the external collaborators
func InitializeClients(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	marketData, err := newMarketDataProvider(cfg.MarketData, log)
	if err != nil {
		return err
	}
	container.MarketData = marketData
	container.TextProvider = llm.NewProvider(ctx, cfg.LLM, log)

	return nil
}

// InitializeServices creates the core services on top of the clients
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container.MarketData == nil {
		return fmt.Errorf("market data provider not initialized")
	}

	container.SymbolCache = financials.NewSymbolCache()
	container.Gateway = financials.NewGateway(container.MarketData, container.SymbolCache, cfg.MarketData.Timeout, log)

	var delegated *tickers.DelegatedExtractor
	if container.TextProvider != nil {
		delegated = tickers.NewDelegatedExtractor(container.TextProvider, cfg.LLM.ExtractionModel, cfg.LLM.Timeout, log)
	}
	container.Resolver = tickers.NewResolver(delegated, tickers.NewPatternExtractor(), log)

	container.Pipeline = analysis.NewPipeline(container.Resolver, container.Gateway, log)
	container.Responder = chat.NewResponder(container.TextProvider, cfg.LLM.ChatModel, cfg.LLM.Timeout, log)

	log.Info().
		Str("market_data", container.MarketData.Name()).
		Bool("llm_enabled", container.TextProvider != nil).
		Msg("Services initialized")

	return nil
}

func newMarketDataProvider(cfg config.MarketDataConfig, log zerolog.Logger) (domain.MarketDataProvider, error) {
	switch cfg.Provider {
	case config.MarketDataNative:
		return yahoo.NewNativeClient(cfg.RequestsPerSecond, log), nil
	case config.MarketDataQuote:
		return yahoo.NewQuoteClient(log,
			yahoo.WithBaseURL(cfg.QuoteURL),
			yahoo.WithRateLimit(cfg.RequestsPerSecond),
		), nil
	default:
		return nil, fmt.Errorf("unknown market data provider %q", cfg.Provider)
	}
}
