package financials

import (
	"encoding/json"
	"strings"

	"github.com/aristath/comps/internal/domain"
)

// MinInfoFields is the smallest record size accepted as a real quote; providers
// answer unknown symbols with a handful of placeholder keys.
const MinInfoFields = 6

// Provider keys read from an info record
const (
	keyMarketCap         = "marketCap"
	keySharesOutstanding = "sharesOutstanding"
	keyTotalDebt         = "totalDebt"
	keyTotalCash         = "totalCash"
	keyTotalRevenue      = "totalRevenue"
	keyEBITDA            = "ebitda"
	keyTrailingEPS       = "trailingEps"
	keyForwardEPS        = "forwardEps"
	keyCurrentPrice      = "currentPrice"
	keyCurrency          = "currency"
)

// Sufficient reports whether the record carries enough fields to be trusted.
func Sufficient(info domain.InfoRecord) bool {
	return len(info) >= MinInfoFields
}

// Normalize converts a provider record into a typed fact sheet. Missing or
// non-numeric fields become zero and a missing currency becomes USD.
func Normalize(symbol string, info domain.InfoRecord) domain.RawFinancials {
	currency := strings.TrimSpace(getString(info, keyCurrency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	return domain.RawFinancials{
		Symbol:            symbol,
		MarketCap:         getFloat64OrZero(info, keyMarketCap),
		SharesOutstanding: getFloat64OrZero(info, keySharesOutstanding),
		TotalDebt:         getFloat64OrZero(info, keyTotalDebt),
		TotalCash:         getFloat64OrZero(info, keyTotalCash),
		Revenue:           getFloat64OrZero(info, keyTotalRevenue),
		EBITDA:            getFloat64OrZero(info, keyEBITDA),
		TrailingEPS:       getFloat64OrZero(info, keyTrailingEPS),
		ForwardEPS:        getFloat64OrZero(info, keyForwardEPS),
		CurrentPrice:      getFloat64OrZero(info, keyCurrentPrice),
		Currency:          currency,
	}
}

func getFloat64(m domain.InfoRecord, key string) *float64 {
	if val, ok := m[key]; ok && val != nil {
		var f float64
		switch v := val.(type) {
		case float64:
			f = v
		case float32:
			f = float64(v)
		case int:
			f = float64(v)
		case int64:
			f = float64(v)
		case json.Number:
			parsed, err := v.Float64()
			if err != nil {
				return nil
			}
			f = parsed
		default:
			return nil
		}
		return &f
	}
	return nil
}

func getFloat64OrZero(m domain.InfoRecord, key string) float64 {
	if val := getFloat64(m, key); val != nil {
		return *val
	}
	return 0
}

func getString(m domain.InfoRecord, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
