// Package handlers provides HTTP handlers for comps analysis.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/domain"
	"github.com/aristath/comps/internal/modules/analysis"
)

// Analyzer runs an analysis for a query
type Analyzer interface {
	Analyze(ctx context.Context, text string) (analysis.Result, error)
}

// AnalysisRequest is the body of POST /api/analyze. Files is accepted for
// compatibility with the frontend and ignored.
type AnalysisRequest struct {
	Text  string   `json:"text"`
	Files []string `json:"files,omitempty"`
}

// AnalysisResponse is the body returned by POST /api/analyze
type AnalysisResponse struct {
	Data             []domain.MetricRow `json:"data"`
	Message          string             `json:"message"`
	ProcessedTickers int                `json:"processed_tickers"`
	ExtractionMethod string             `json:"extraction_method"`
	AnalysisID       string             `json:"analysis_id"`
	Summary          domain.PeerSummary `json:"summary"`
}

// Handler handles analysis HTTP requests
type Handler struct {
	analyzer Analyzer
	log      zerolog.Logger
}

// NewHandler creates a new analysis handler
func NewHandler(analyzer Analyzer, log zerolog.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		log:      log.With().Str("handler", "analysis").Logger(),
	}
}

// HandleAnalyze handles POST /api/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn().Err(err).Msg("Failed to decode request body")
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.analyze(r.Context(), req.Text)
	if err != nil {
		var upstream *analysis.UpstreamError
		switch {
		case errors.Is(err, analysis.ErrEmptyInput):
			h.writeError(w, http.StatusBadRequest, "Text input is required")
		case errors.As(err, &upstream):
			h.log.Warn().Strs("tickers", upstream.Tickers).Msg("No financial data could be loaded")
			h.writeError(w, http.StatusTooManyRequests, upstream.Error())
		default:
			h.log.Error().Err(err).Msg("Analysis failed")
			h.writeError(w, http.StatusInternalServerError, "Analysis failed")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, AnalysisResponse{
		Data:             result.Rows,
		Message:          result.Message,
		ProcessedTickers: len(result.Rows),
		ExtractionMethod: string(result.Method),
		AnalysisID:       result.ID.String(),
		Summary:          result.Summary,
	})
}

// HandleUpload handles POST /api/upload. Document upload is not implemented.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Upload endpoint - coming soon",
	})
}

// analyze shields the handler from panics so the caller still gets a JSON error.
func (h *Handler) analyze(ctx context.Context, text string) (result analysis.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic during analysis: %v", rec)
		}
	}()
	return h.analyzer.Analyze(ctx, text)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"detail": message})
}
