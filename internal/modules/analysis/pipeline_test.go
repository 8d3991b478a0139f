package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aristath/comps/internal/domain"
	"github.com/aristath/comps/internal/modules/tickers"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, symbols []string) map[string]domain.RawFinancials {
	args := m.Called(ctx, symbols)
	return args.Get(0).(map[string]domain.RawFinancials)
}

type stubResolver struct {
	resolution tickers.Resolution
}

func (s stubResolver) Resolve(ctx context.Context, text string) tickers.Resolution {
	return s.resolution
}

func quietLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func regexResolver() *tickers.Resolver {
	return tickers.NewResolver(nil, nil, quietLogger())
}

func reference(symbol string) domain.RawFinancials {
	return domain.RawFinancials{
		Symbol:            symbol,
		MarketCap:         1000,
		SharesOutstanding: 100,
		TotalDebt:         200,
		TotalCash:         50,
		Revenue:           500,
		EBITDA:            100,
		TrailingEPS:       2,
		ForwardEPS:        2.5,
		Currency:          "USD",
	}
}

func TestAnalyze_WhitespaceIsInputError(t *testing.T) {
	fetcher := new(mockFetcher)
	p := NewPipeline(regexResolver(), fetcher, quietLogger())

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := p.Analyze(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestAnalyze_NoTickers(t *testing.T) {
	fetcher := new(mockFetcher)
	p := NewPipeline(regexResolver(), fetcher, quietLogger())

	result, err := p.Analyze(context.Background(), "comparisons between valuations")
	require.NoError(t, err)

	assert.Empty(t, result.Rows)
	assert.NotNil(t, result.Rows)
	assert.Equal(t, NoTickersMessage, result.Message)
	assert.Equal(t, domain.ExtractionRegex, result.Method)
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestAnalyze_Success(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, []string{"NVDA", "AMD"}).Return(map[string]domain.RawFinancials{
		"AMD":  reference("AMD"),
		"NVDA": reference("NVDA"),
	})
	p := NewPipeline(regexResolver(), fetcher, quietLogger())

	result, err := p.Analyze(context.Background(), "NVDA versus AMD")
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "NVDA", result.Rows[0].Ticker)
	assert.Equal(t, "AMD", result.Rows[1].Ticker)
	assert.Equal(t, 1150.0, result.Rows[0].EV)
	assert.Equal(t, 5.0, result.Rows[0].PELTM)
	assert.Equal(t, 4.0, result.Rows[1].PENTM)
	assert.Equal(t, "Successfully analyzed 2 tickers using regex extraction: NVDA, AMD", result.Message)
	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.Equal(t, 2, result.Summary.EVEbitdaLTM.Count)
	fetcher.AssertExpectations(t)
}

func TestAnalyze_PartialFailure(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, []string{"XXFAKE", "AAPL"}).Return(map[string]domain.RawFinancials{
		"AAPL": reference("AAPL"),
	})
	resolver := stubResolver{resolution: tickers.Resolution{Tickers: []string{"XXFAKE", "AAPL"}, Method: domain.ExtractionLLM}}
	p := NewPipeline(resolver, fetcher, quietLogger())

	result, err := p.Analyze(context.Background(), "compare these")
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "AAPL", result.Rows[0].Ticker)
	assert.Equal(t, []string{"XXFAKE", "AAPL"}, result.Tickers)
	assert.Equal(t, "Successfully analyzed 1 tickers using LLM extraction: AAPL", result.Message)
}

func TestAnalyze_TotalFetchFailure(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, []string{"AAPL", "MSFT"}).Return(map[string]domain.RawFinancials{})
	p := NewPipeline(regexResolver(), fetcher, quietLogger())

	_, err := p.Analyze(context.Background(), "AAPL MSFT")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, []string{"AAPL", "MSFT"}, upstream.Tickers)
	assert.Equal(t, "Failed to load data from Yahoo Finance for tickers: AAPL, MSFT. This may be due to rate limits or API restrictions. Please try again in a few minutes.", err.Error())
	assert.False(t, errors.Is(err, ErrEmptyInput))
}

func TestAnalyze_InvalidRowsAreDiscarded(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, []string{"AAPL"}).Return(map[string]domain.RawFinancials{
		"AAPL": {Symbol: "aapl"},
	})
	p := NewPipeline(regexResolver(), fetcher, quietLogger())

	_, err := p.Analyze(context.Background(), "AAPL")

	var upstream *UpstreamError
	assert.True(t, errors.As(err, &upstream))
}
