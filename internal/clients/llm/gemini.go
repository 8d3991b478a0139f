package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/aristath/comps/internal/domain"
)

// GeminiProvider implements domain.TextProvider using the Gemini API
type GeminiProvider struct {
	client       *genai.Client
	defaultModel string
	log          zerolog.Logger
}

// NewGeminiProvider creates a Gemini provider. defaultModel is used when a request names none.
func NewGeminiProvider(ctx context.Context, apiKey, defaultModel string, log zerolog.Logger) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
	}
	if defaultModel == "" {
		return nil, fmt.Errorf("a model is required for the gemini provider")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:       client,
		defaultModel: defaultModel,
		log:          log.With().Str("client", "gemini").Logger(),
	}, nil
}

// Name identifies the provider
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Generate sends a single-turn request and returns the text of the first candidate with content.
func (p *GeminiProvider) Generate(ctx context.Context, req domain.TextRequest) (string, error) {
	model := modelOrDefault(req.Model, p.defaultModel)

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokensOrDefault(req.MaxTokens)),
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	start := time.Now()
	contents := []*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}
	resp, err := p.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	text := extractCandidateText(resp)
	if text == "" {
		return "", fmt.Errorf("no response generated from Gemini API")
	}

	p.log.Debug().
		Str("model", model).
		Int("response_length", len(text)).
		Dur("duration", time.Since(start)).
		Msg("Gemini completion finished")

	return text, nil
}

// extractCandidateText returns the joined text parts of the first candidate that has any.
func extractCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var response strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				response.WriteString(part.Text)
			}
		}
		if response.Len() > 0 {
			break
		}
	}
	return response.String()
}
