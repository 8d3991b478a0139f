// Package domain provides core domain models and types.
package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultCurrency is assumed when the provider omits the currency code.
const DefaultCurrency = "USD"

// ExtractionMethod identifies which strategy resolved the tickers of a query
type ExtractionMethod string

const (
	// ExtractionLLM means the text-understanding provider produced the tickers
	ExtractionLLM ExtractionMethod = "LLM"
	// ExtractionRegex means the pattern-based extractor produced the tickers
	ExtractionRegex ExtractionMethod = "regex"
)

// InfoRecord is the loosely typed per-symbol snapshot returned by a market-data provider.
// Keys follow Yahoo Finance naming (marketCap, totalDebt, ...). Presence of any key is not guaranteed.
type InfoRecord map[string]interface{}

// RawFinancials is the normalized fact sheet fetched for one symbol.
// Absent provider fields are zero, which is indistinguishable from a real zero (e.g. no debt).
type RawFinancials struct {
	Symbol            string  `json:"symbol" validate:"required,alpha,uppercase,max=5"`
	MarketCap         float64 `json:"marketCap"`
	SharesOutstanding float64 `json:"sharesOutstanding"`
	TotalDebt         float64 `json:"totalDebt"`
	TotalCash         float64 `json:"totalCash"`
	Revenue           float64 `json:"revenue"`
	EBITDA            float64 `json:"ebitda"`
	TrailingEPS       float64 `json:"trailingEps"`
	ForwardEPS        float64 `json:"forwardEps"`
	CurrentPrice      float64 `json:"currentPrice"`
	Currency          string  `json:"currency" validate:"omitempty,len=3,alpha"`
}

// ComputedMetrics are the valuation multiples derived from RawFinancials.
// Zero is the sentinel for "undefined" (non-positive denominator).
type ComputedMetrics struct {
	EV           float64 `json:"ev"`
	EVRevenueLTM float64 `json:"evRevenueLTM"`
	EVEbitdaLTM  float64 `json:"evEbitdaLTM"`
	EVEbitdaNTM  float64 `json:"evEbitdaNTM"`
	PELTM        float64 `json:"peLTM"`
	PENTM        float64 `json:"peNTM"`
}

// MetricRow is one line of the comps table: identity, fetched fields and computed multiples.
// JSON names match the frontend table contract.
type MetricRow struct {
	Ticker            string  `json:"ticker"`
	MarketCap         float64 `json:"marketCap"`
	SharesOutstanding float64 `json:"sharesOutstanding"`
	Debt              float64 `json:"debt"`
	Cash              float64 `json:"cash"`
	Revenue           float64 `json:"revenue"`
	EBITDA            float64 `json:"ebitda"`
	EPS               float64 `json:"eps"`
	ForwardEPS        float64 `json:"forwardEps"`
	CurrentPrice      float64 `json:"currentPrice"`
	Currency          string  `json:"currency,omitempty"`
	EV                float64 `json:"ev"`
	EVRevenueLTM      float64 `json:"evRevenueLTM"`
	EVEbitdaLTM       float64 `json:"evEbitdaLTM"`
	EVEbitdaNTM       float64 `json:"evEbitdaNTM"`
	PELTM             float64 `json:"peLTM"`
	PENTM             float64 `json:"peNTM"`
}

var validate = validator.New()

// Validate checks the identity fields of the fact sheet.
func (r RawFinancials) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid financials for %q: %w", r.Symbol, err)
	}
	return nil
}

// NewMetricRow assembles a row from a validated fact sheet and its computed multiples.
func NewMetricRow(raw RawFinancials, metrics ComputedMetrics) (MetricRow, error) {
	if err := raw.Validate(); err != nil {
		return MetricRow{}, err
	}

	return MetricRow{
		Ticker:            raw.Symbol,
		MarketCap:         raw.MarketCap,
		SharesOutstanding: raw.SharesOutstanding,
		Debt:              raw.TotalDebt,
		Cash:              raw.TotalCash,
		Revenue:           raw.Revenue,
		EBITDA:            raw.EBITDA,
		EPS:               raw.TrailingEPS,
		ForwardEPS:        raw.ForwardEPS,
		CurrentPrice:      raw.CurrentPrice,
		Currency:          raw.Currency,
		EV:                metrics.EV,
		EVRevenueLTM:      metrics.EVRevenueLTM,
		EVEbitdaLTM:       metrics.EVEbitdaLTM,
		EVEbitdaNTM:       metrics.EVEbitdaNTM,
		PELTM:             metrics.PELTM,
		PENTM:             metrics.PENTM,
	}, nil
}

// MultipleStats is the peer mean/median of one multiple over rows where it is defined.
type MultipleStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// PeerSummary aggregates each multiple across the comps table.
type PeerSummary struct {
	EVRevenueLTM MultipleStats `json:"evRevenueLTM"`
	EVEbitdaLTM  MultipleStats `json:"evEbitdaLTM"`
	EVEbitdaNTM  MultipleStats `json:"evEbitdaNTM"`
	PELTM        MultipleStats `json:"peLTM"`
	PENTM        MultipleStats `json:"peNTM"`
}
