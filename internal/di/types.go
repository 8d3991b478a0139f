/**
 * Package di provides dependency injection type definitions.
 *
 * The Container holds every long-lived service instance and is handed to the
 * HTTP server, which builds its handlers from it.
 */
package di

import (
	"github.com/aristath/comps/internal/domain"
	"github.com/aristath/comps/internal/modules/analysis"
	"github.com/aristath/comps/internal/modules/chat"
	"github.com/aristath/comps/internal/modules/financials"
	"github.com/aristath/comps/internal/modules/tickers"
	"github.com/aristath/comps/internal/scheduler"
)

// Container holds all application dependencies
type Container struct {
	// External collaborators
	MarketData   domain.MarketDataProvider
	TextProvider domain.TextProvider // nil when no LLM is configured

	// Core services
	SymbolCache *financials.SymbolCache
	Gateway     *financials.Gateway
	Resolver    *tickers.Resolver
	Pipeline    *analysis.Pipeline
	Responder   *chat.Responder

	// Background jobs
	Scheduler     *scheduler.Scheduler
	CacheResetJob *scheduler.CacheResetJob
}
