package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/comps/internal/modules/financials"
	"github.com/aristath/comps/internal/scheduler"
)

// JobRunner executes a registered job on demand
type JobRunner interface {
	RunNow(job scheduler.Job) error
}

// SystemHandlers serves runtime status and maintenance endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	gateway     *financials.Gateway
	runner      JobRunner
	cacheReset  scheduler.Job
	llmProvider string
	startedAt   time.Time
}

// SystemStatusResponse is the body of GET /api/system/status
type SystemStatusResponse struct {
	Status             string                `json:"status"`
	Version            string                `json:"version"`
	UptimeSeconds      int64                 `json:"uptime_seconds"`
	LLMEnabled         bool                  `json:"llm_enabled"`
	LLMProvider        string                `json:"llm_provider,omitempty"`
	MarketDataProvider string                `json:"market_data_provider"`
	Cache              financials.CacheStats `json:"cache"`
	CachedSymbols      []string              `json:"cached_symbols"`
	CPUPercent         float64               `json:"cpu_percent"`
	RAMPercent         float64               `json:"ram_percent"`
	Timestamp          string                `json:"timestamp"`
}

// NewSystemHandlers creates system handlers
func NewSystemHandlers(log zerolog.Logger, gateway *financials.Gateway, runner JobRunner, cacheReset scheduler.Job, llmProvider string) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		gateway:     gateway,
		runner:      runner,
		cacheReset:  cacheReset,
		llmProvider: llmProvider,
		startedAt:   time.Now(),
	}
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:             "healthy",
		Version:            Version,
		UptimeSeconds:      int64(time.Since(h.startedAt).Seconds()),
		LLMEnabled:         h.llmProvider != "",
		LLMProvider:        h.llmProvider,
		MarketDataProvider: h.gateway.ProviderName(),
		Cache:              h.gateway.Stats(),
		CachedSymbols:      h.gateway.Cache().Symbols(),
		CPUPercent:         cpuPercent,
		RAMPercent:         ramPercent,
		Timestamp:          time.Now().Format(time.RFC3339),
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleCacheReset handles POST /api/system/cache/reset
func (h *SystemHandlers) HandleCacheReset(w http.ResponseWriter, r *http.Request) {
	before := h.gateway.Cache().Len()

	if err := h.runner.RunNow(h.cacheReset); err != nil {
		h.log.Error().Err(err).Msg("Cache reset failed")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Cache reset failed"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Symbol cache cleared",
		"removed": before,
	})
}

// getSystemStats calculates CPU and RAM usage percentages
// Uses a short interval (100ms) so the status call stays fast
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
