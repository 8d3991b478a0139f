package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/domain"
)

// ClaudeProvider implements domain.TextProvider using the Anthropic Messages API
type ClaudeProvider struct {
	client       anthropic.Client
	defaultModel string
	log          zerolog.Logger
}

// NewClaudeProvider creates a Claude provider. defaultModel is used when a request names none.
func NewClaudeProvider(apiKey, defaultModel string, log zerolog.Logger, opts ...option.RequestOption) (*ClaudeProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the claude provider")
	}
	if defaultModel == "" {
		return nil, fmt.Errorf("a model is required for the claude provider")
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &ClaudeProvider{
		client:       anthropic.NewClient(opts...),
		defaultModel: defaultModel,
		log:          log.With().Str("client", "claude").Logger(),
	}, nil
}

// Name identifies the provider
func (p *ClaudeProvider) Name() string {
	return "claude"
}

// Generate sends a single-turn request and returns the concatenated text blocks.
func (p *ClaudeProvider) Generate(ctx context.Context, req domain.TextRequest) (string, error) {
	model := modelOrDefault(req.Model, p.defaultModel)

	prompt := req.Prompt
	if req.JSON {
		// Claude has no JSON response mode; the instruction travels with the prompt.
		prompt += "\n\nRespond with a single JSON object and nothing else."
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokensOrDefault(req.MaxTokens)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.System},
		}
	}

	start := time.Now()
	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from Claude API")
	}

	p.log.Debug().
		Str("model", model).
		Int("response_length", response.Len()).
		Dur("duration", time.Since(start)).
		Msg("Claude completion finished")

	return response.String(), nil
}
