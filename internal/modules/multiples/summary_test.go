package multiples

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/comps/internal/domain"
)

func TestSummarize_IgnoresUndefinedMultiples(t *testing.T) {
	rows := []domain.MetricRow{
		{Ticker: "A", EVRevenueLTM: 2, EVEbitdaLTM: 10, EVEbitdaNTM: 10, PELTM: 20, PENTM: 0},
		{Ticker: "B", EVRevenueLTM: 4, EVEbitdaLTM: 0, EVEbitdaNTM: 0, PELTM: 30, PENTM: 0},
		{Ticker: "C", EVRevenueLTM: 9, EVEbitdaLTM: 14, EVEbitdaNTM: 14, PELTM: 0, PENTM: 0},
	}

	s := Summarize(rows)

	assert.Equal(t, 3, s.EVRevenueLTM.Count)
	assert.InDelta(t, 5.0, s.EVRevenueLTM.Mean, 1e-9)
	assert.InDelta(t, 4.0, s.EVRevenueLTM.Median, 1e-9)

	assert.Equal(t, 2, s.EVEbitdaLTM.Count)
	assert.InDelta(t, 12.0, s.EVEbitdaLTM.Mean, 1e-9)
	assert.InDelta(t, 12.0, s.EVEbitdaLTM.Median, 1e-9)

	assert.Equal(t, 2, s.PELTM.Count)
	assert.InDelta(t, 25.0, s.PELTM.Median, 1e-9)

	assert.Equal(t, domain.MultipleStats{}, s.PENTM)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, domain.PeerSummary{}, Summarize(nil))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, median([]float64{1, 3, 7}))
	assert.Equal(t, 2.5, median([]float64{1, 2, 3, 4}))
	assert.Equal(t, 8.0, median([]float64{8}))
}
