// Package yahoo provides market-data providers backed by Yahoo Finance.
//
// NativeClient uses the go-yfinance library and is the default. QuoteClient
// talks to the public quote endpoint directly and exists for environments
// where the library's session handshake is blocked.
package yahoo

import (
	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerSecond paces outbound calls when no rate is configured.
	DefaultRequestsPerSecond = 2

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// newLimiter builds a token bucket allowing rps requests per second with a burst of rps.
func newLimiter(rps int) *rate.Limiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return rate.NewLimiter(rate.Limit(rps), rps)
}
