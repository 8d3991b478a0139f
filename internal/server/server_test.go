package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/comps/internal/config"
	"github.com/aristath/comps/internal/di"
	"github.com/aristath/comps/internal/domain"
)

type fakeMarketData struct{}

func (fakeMarketData) Info(ctx context.Context, symbol string) (domain.InfoRecord, error) {
	if symbol != "AAPL" {
		return nil, errors.New("429 Too Many Requests")
	}
	return domain.InfoRecord{
		"marketCap":         1000.0,
		"sharesOutstanding": 100.0,
		"totalDebt":         200.0,
		"totalCash":         50.0,
		"totalRevenue":      500.0,
		"ebitda":            100.0,
		"trailingEps":       2.0,
		"forwardEps":        2.5,
		"currency":          "USD",
	}, nil
}

func (fakeMarketData) Name() string { return "fake" }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := zerolog.New(nil).Level(zerolog.Disabled)
	cfg := &config.Config{
		Port:        8000,
		CORSOrigins: config.DefaultCORSOrigins,
		LLM:         config.LLMConfig{Timeout: time.Second},
		MarketData: config.MarketDataConfig{
			Provider:          config.MarketDataNative,
			Timeout:           time.Second,
			RequestsPerSecond: 10,
		},
	}

	container := &di.Container{MarketData: fakeMarketData{}}
	require.NoError(t, di.InitializeServices(container, cfg, log))
	require.NoError(t, di.RegisterJobs(container, cfg, log))

	return New(Config{Log: log, Config: cfg, Container: container})
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestInfoRoutes(t *testing.T) {
	tests := []struct {
		path string
		want map[string]interface{}
	}{
		{"/", map[string]interface{}{"message": "AI-Powered Comps Spreader API", "version": "1.0.0", "status": "running"}},
		{"/health", map[string]interface{}{"status": "healthy", "service": "comps-api"}},
		{"/api/test", map[string]interface{}{"message": "API is working!", "endpoint": "/api/test"}},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(s, "GET", tt.path, "")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, decode(t, w))
		})
	}
}

func TestAnalyzeThenChat(t *testing.T) {
	s := newTestServer(t)

	w := do(s, "POST", "/api/analyze", `{"text":"AAPL"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var analyzed struct {
		Data             []domain.MetricRow `json:"data"`
		Message          string             `json:"message"`
		ProcessedTickers int                `json:"processed_tickers"`
		ExtractionMethod string             `json:"extraction_method"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&analyzed))
	require.Len(t, analyzed.Data, 1)
	assert.Equal(t, 1150.0, analyzed.Data[0].EV)
	assert.Equal(t, 2.3, analyzed.Data[0].EVRevenueLTM)
	assert.Equal(t, "regex", analyzed.ExtractionMethod)
	assert.Equal(t, "Successfully analyzed 1 tickers using regex extraction: AAPL", analyzed.Message)

	rowsJSON, err := json.Marshal(analyzed.Data)
	require.NoError(t, err)

	w = do(s, "POST", "/api/chat", `{"text":"what is the market cap?","context":`+string(rowsJSON)+`}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AAPL has the largest market cap at $1,000, while AAPL has the smallest at $1,000.", decode(t, w)["reply"])
}

func TestAnalyze_StatusCodes(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, do(s, "POST", "/api/analyze", `{"text":"  "}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(s, "POST", "/api/analyze", `{"text":"ZZZZ"}`).Code)

	w := do(s, "POST", "/api/analyze", `{"text":"comparisons between valuations"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["processed_tickers"])
}

func TestSystemStatusAndCacheReset(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, do(s, "POST", "/api/analyze", `{"text":"AAPL"}`).Code)

	w := do(s, "GET", "/api/system/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	var status SystemStatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "fake", status.MarketDataProvider)
	assert.False(t, status.LLMEnabled)
	assert.Equal(t, 1, status.Cache.Entries)
	assert.Equal(t, []string{"AAPL"}, status.CachedSymbols)

	w = do(s, "POST", "/api/system/cache/reset", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["removed"])
	assert.Equal(t, 0, s.container.SymbolCache.Len())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		origin string
		allow  bool
	}{
		{"http://localhost:5173", true},
		{"http://127.0.0.1:3000", true},
		{"https://evil.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest("OPTIONS", "/api/analyze", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", "POST")
			w := httptest.NewRecorder()

			s.Handler().ServeHTTP(w, req)

			if tt.allow {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}
