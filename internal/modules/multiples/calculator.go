// Package multiples computes enterprise value and the valuation multiples of the comps table.
package multiples

import (
	"math"

	"github.com/aristath/comps/internal/domain"
)

// EnterpriseValue returns market cap plus debt minus cash, floored at zero.
func EnterpriseValue(marketCap, debt, cash float64) float64 {
	return math.Max(0, marketCap+debt-cash)
}

// Compute derives the multiples for one fact sheet. It is total: every ratio with a
// non-positive denominator is reported as 0.
//
// EVEbitdaNTM deliberately reuses the trailing EBITDA, because no forward EBITDA source
// is wired in; it always equals EVEbitdaLTM.
func Compute(raw domain.RawFinancials) domain.ComputedMetrics {
	ev := EnterpriseValue(raw.MarketCap, raw.TotalDebt, raw.TotalCash)

	evEbitda := ratio(ev, raw.EBITDA)

	return domain.ComputedMetrics{
		EV:           ev,
		EVRevenueLTM: ratio(ev, raw.Revenue),
		EVEbitdaLTM:  evEbitda,
		EVEbitdaNTM:  evEbitda,
		PELTM:        priceEarnings(raw.MarketCap, raw.TrailingEPS, raw.SharesOutstanding),
		PENTM:        priceEarnings(raw.MarketCap, raw.ForwardEPS, raw.SharesOutstanding),
	}
}

func ratio(numerator, denominator float64) float64 {
	if denominator > 0 {
		return numerator / denominator
	}
	return 0
}

// priceEarnings is market cap over total earnings (EPS x shares).
func priceEarnings(marketCap, eps, shares float64) float64 {
	if eps > 0 && shares > 0 {
		return marketCap / (eps * shares)
	}
	return 0
}
