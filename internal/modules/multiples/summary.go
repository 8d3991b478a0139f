package multiples

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/comps/internal/domain"
)

// Summarize returns the peer mean and median of every multiple in rows.
// Only strictly positive values take part; zero means "undefined" for that company.
func Summarize(rows []domain.MetricRow) domain.PeerSummary {
	collect := func(pick func(domain.MetricRow) float64) domain.MultipleStats {
		values := make([]float64, 0, len(rows))
		for _, row := range rows {
			if v := pick(row); v > 0 {
				values = append(values, v)
			}
		}
		return describe(values)
	}

	return domain.PeerSummary{
		EVRevenueLTM: collect(func(r domain.MetricRow) float64 { return r.EVRevenueLTM }),
		EVEbitdaLTM:  collect(func(r domain.MetricRow) float64 { return r.EVEbitdaLTM }),
		EVEbitdaNTM:  collect(func(r domain.MetricRow) float64 { return r.EVEbitdaNTM }),
		PELTM:        collect(func(r domain.MetricRow) float64 { return r.PELTM }),
		PENTM:        collect(func(r domain.MetricRow) float64 { return r.PENTM }),
	}
}

func describe(values []float64) domain.MultipleStats {
	if len(values) == 0 {
		return domain.MultipleStats{}
	}

	sort.Float64s(values)

	return domain.MultipleStats{
		Mean:   stat.Mean(values, nil),
		Median: median(values),
		Count:  len(values),
	}
}

// median expects sorted input. The empirical quantile picks the lower middle value,
// so even-length samples average it with the upper one.
func median(sorted []float64) float64 {
	lower := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if len(sorted)%2 == 1 {
		return lower
	}
	return (lower + sorted[len(sorted)/2]) / 2
}
