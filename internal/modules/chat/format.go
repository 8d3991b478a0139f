package chat

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/aristath/comps/internal/domain"
)

// FormatMoney renders an amount as $2.5T, $350.0B, $12.3M or $950,000.
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	switch {
	case v >= 1e12:
		return sign + "$" + humanize.FormatFloat("#,###.#", v/1e12) + "T"
	case v >= 1e9:
		return sign + "$" + humanize.FormatFloat("#,###.#", v/1e9) + "B"
	case v >= 1e6:
		return sign + "$" + humanize.FormatFloat("#,###.#", v/1e6) + "M"
	default:
		return sign + "$" + humanize.Comma(int64(math.Round(v)))
	}
}

// FormatMultiple renders a ratio as 23.4x, or n/a when it is undefined (zero).
func FormatMultiple(v float64) string {
	if v <= 0 {
		return "n/a"
	}
	return humanize.FormatFloat("#,###.#", v) + "x"
}

// FormatSummary is the one-line description of a row sent to the text provider.
func FormatSummary(row domain.MetricRow) string {
	return fmt.Sprintf(
		"%s: Market Cap %s, EV %s, Revenue %s, EBITDA %s, Debt %s, Cash %s, EV/Revenue LTM %s, EV/EBITDA LTM %s, EV/EBITDA NTM %s, P/E LTM %s, P/E NTM %s",
		row.Ticker,
		FormatMoney(row.MarketCap),
		FormatMoney(row.EV),
		FormatMoney(row.Revenue),
		FormatMoney(row.EBITDA),
		FormatMoney(row.Debt),
		FormatMoney(row.Cash),
		FormatMultiple(row.EVRevenueLTM),
		FormatMultiple(row.EVEbitdaLTM),
		FormatMultiple(row.EVEbitdaNTM),
		FormatMultiple(row.PELTM),
		FormatMultiple(row.PENTM),
	)
}
