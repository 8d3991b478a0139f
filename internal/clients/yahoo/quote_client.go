package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aristath/comps/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultQuoteURL is the public Yahoo Finance quote endpoint
const DefaultQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"

// yahooQuoteResponse represents the response from Yahoo Finance quote API
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []map[string]interface{} `json:"result"`
		Error  interface{}              `json:"error"`
	} `json:"quoteResponse"`
}

// StatusError is returned when the quote endpoint answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Yahoo Finance API returned status %d: %s", e.StatusCode, e.Body)
}

// QuoteClient implements domain.MarketDataProvider against the raw quote endpoint
type QuoteClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// QuoteOption configures the QuoteClient.
type QuoteOption func(*QuoteClient)

// WithBaseURL sets a custom endpoint URL.
func WithBaseURL(baseURL string) QuoteOption {
	return func(c *QuoteClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) QuoteOption {
	return func(c *QuoteClient) {
		c.httpClient = httpClient
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) QuoteOption {
	return func(c *QuoteClient) {
		c.limiter = newLimiter(requestsPerSecond)
	}
}

// NewQuoteClient creates a new quote endpoint client
func NewQuoteClient(log zerolog.Logger, opts ...QuoteOption) *QuoteClient {
	c := &QuoteClient{
		baseURL: DefaultQuoteURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: newLimiter(DefaultRequestsPerSecond),
		log:     log.With().Str("client", "yahoo-quote").Logger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name identifies the provider
func (c *QuoteClient) Name() string {
	return "yahoo-quote"
}

// Info fetches the quote record for symbol.
func (c *QuoteClient) Info(ctx context.Context, symbol string) (domain.InfoRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Add("symbols", symbol)
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers to mimic browser
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result yahooQuoteResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %v", result.QuoteResponse.Error)
	}

	if len(result.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data returned for symbol %s", symbol)
	}

	c.log.Debug().Str("symbol", symbol).Int("fields", len(result.QuoteResponse.Result[0])).Msg("Fetched quote")
	return domain.InfoRecord(result.QuoteResponse.Result[0]), nil
}
