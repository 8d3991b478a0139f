// Package handlers provides HTTP handlers for follow-up chat.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/domain"
	"github.com/aristath/comps/internal/modules/chat"
)

// ChatRequest is the body of POST /api/chat.
// Text must be present but may be empty.
type ChatRequest struct {
	Text    *string            `json:"text" validate:"required"`
	Context []domain.MetricRow `json:"context"`
}

// ChatResponse is the body returned by POST /api/chat
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Handler handles chat HTTP requests
type Handler struct {
	responder *chat.Responder
	validate  *validator.Validate
	log       zerolog.Logger
}

// NewHandler creates a new chat handler
func NewHandler(responder *chat.Responder, log zerolog.Logger) *Handler {
	return &Handler{
		responder: responder,
		validate:  validator.New(),
		log:       log.With().Str("handler", "chat").Logger(),
	}
}

// HandleChat handles POST /api/chat
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn().Err(err).Msg("Failed to decode request body")
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Text input is required")
		return
	}

	reply := h.responder.Respond(r.Context(), *req.Text, req.Context)

	h.log.Info().
		Int("rows", len(req.Context)).
		Int("reply_length", len(reply)).
		Msg("Chat reply generated")

	h.writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
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
