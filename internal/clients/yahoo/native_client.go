package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aristath/comps/internal/domain"
	"github.com/rs/zerolog"
	"github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"
	"golang.org/x/time/rate"
)

// infoFetcher loads the raw info snapshot for one symbol
type infoFetcher func(symbol string) (*models.Info, error)

// NativeClient implements domain.MarketDataProvider using the go-yfinance library
type NativeClient struct {
	fetch   infoFetcher
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewNativeClient creates a new native Yahoo Finance client
func NewNativeClient(requestsPerSecond int, log zerolog.Logger) *NativeClient {
	return &NativeClient{
		fetch:   fetchInfo,
		limiter: newLimiter(requestsPerSecond),
		log:     log.With().Str("client", "yahoo-native").Logger(),
	}
}

// Name identifies the provider
func (c *NativeClient) Name() string {
	return "yahoo-native"
}

// Info fetches the info snapshot for symbol. Only non-empty fields are kept so
// the record size reflects how much the provider actually knows about the symbol.
func (c *NativeClient) Info(ctx context.Context, symbol string) (domain.InfoRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	type outcome struct {
		info *models.Info
		err  error
	}
	// The library call takes no context; run it aside so the caller's deadline still applies.
	done := make(chan outcome, 1)
	go func() {
		info, err := c.fetch(symbol)
		done <- outcome{info: info, err: err}
	}()

	var res outcome
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}

	if res.err != nil {
		return nil, fmt.Errorf("failed to get info: %w", res.err)
	}
	if res.info == nil {
		return nil, fmt.Errorf("no info returned for %s", symbol)
	}

	record, err := toInfoRecord(res.info)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("symbol", symbol).Int("fields", len(record)).Msg("Fetched info")
	return record, nil
}

func fetchInfo(symbol string) (*models.Info, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	return t.Info()
}

// toInfoRecord flattens the typed info into a record keyed by the library's JSON
// names (marketCap, totalDebt, ...), dropping zero values.
func toInfoRecord(info *models.Info) (domain.InfoRecord, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("failed to encode info: %w", err)
	}

	var all map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&all); err != nil {
		return nil, fmt.Errorf("failed to decode info: %w", err)
	}

	record := make(domain.InfoRecord, len(all))
	for key, val := range all {
		if isEmptyValue(val) {
			continue
		}
		record[lowerFirst(key)] = val
	}
	return record, nil
}

// lowerFirst maps an exported Go field name onto Yahoo's camelCase key; keys already
// in camelCase pass through.
func lowerFirst(key string) string {
	if key == "" {
		return key
	}
	return strings.ToLower(key[:1]) + key[1:]
}

func isEmptyValue(val interface{}) bool {
	switch v := val.(type) {
	case nil:
		return true
	case json.Number:
		f, err := v.Float64()
		return err != nil || f == 0
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return !v
	case []interface{}:
		return len(v) == 0
	case map[string]interface{}:
		return len(v) == 0
	default:
		return false
	}
}
