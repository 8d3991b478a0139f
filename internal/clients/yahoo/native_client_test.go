package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aristath/comps/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wnjoon/go-yfinance/pkg/models"
)

var _ domain.MarketDataProvider = (*NativeClient)(nil)

func newTestNativeClient(fetch infoFetcher) *NativeClient {
	c := NewNativeClient(100, zerolog.New(nil).Level(zerolog.Disabled))
	c.fetch = fetch
	return c
}

func TestNativeClient_Info(t *testing.T) {
	c := newTestNativeClient(func(symbol string) (*models.Info, error) {
		return &models.Info{
			MarketCap:    3000,
			CurrentPrice: 10,
			LongName:     "Apple Inc.",
		}, nil
	})

	record, err := c.Info(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Contains(t, record, "marketCap")
	assert.Contains(t, record, "currentPrice")
	assert.Contains(t, record, "longName")
	assert.NotContains(t, record, "trailingPE")
	assert.NotContains(t, record, "industry")
}

func TestNativeClient_InfoError(t *testing.T) {
	c := newTestNativeClient(func(symbol string) (*models.Info, error) {
		return nil, errors.New("404 Not Found")
	})

	_, err := c.Info(context.Background(), "XXFAKE")
	assert.Error(t, err)
}

func TestNativeClient_InfoNil(t *testing.T) {
	c := newTestNativeClient(func(symbol string) (*models.Info, error) {
		return nil, nil
	})

	_, err := c.Info(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestNativeClient_RespectsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	c := newTestNativeClient(func(symbol string) (*models.Info, error) {
		<-release
		return &models.Info{}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Info(ctx, "AAPL")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIsEmptyValue(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
		want bool
	}{
		{"nil", nil, true},
		{"zero number", json.Number("0"), true},
		{"number", json.Number("1.5"), false},
		{"blank string", "  ", true},
		{"string", "USD", false},
		{"false", false, true},
		{"empty list", []interface{}{}, true},
		{"empty object", map[string]interface{}{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isEmptyValue(tt.val))
		})
	}
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "marketCap", lowerFirst("MarketCap"))
	assert.Equal(t, "totalDebt", lowerFirst("totalDebt"))
	assert.Equal(t, "", lowerFirst(""))
}
