// Package chat answers follow-up questions about a comps table, delegating to a
// text provider when one is configured and falling back to keyword rules.
package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/domain"
)

// NoDataReply is returned whenever the question arrives without any rows.
const NoDataReply = "I don't have any financial data to analyze yet. Please run an analysis first by entering some ticker symbols or company names, then ask me questions about the results."

const analystSystemPrompt = `You are a financial analyst expert specializing in comparative company analysis and financial metrics.

Your role:
- Analyze financial data for multiple companies
- Answer questions about valuations, performance, ratios, and trends
- Provide clear, concise, and actionable insights
- Compare companies across key metrics when requested

Guidelines:
- Be specific with numbers and ratios
- Explain what the metrics mean in business terms
- Highlight significant differences between companies
- Use professional but accessible language
- Keep responses focused and informative`

const (
	chatTemperature = 0.3
	chatMaxTokens   = 500
)

// FallbackReply is the apology returned when answering fails unexpectedly.
func FallbackReply(question string) string {
	return fmt.Sprintf("I encountered an issue while analyzing the data. Based on the available information, I can see you're asking about %s. Please try rephrasing your question or check the data in the table above.", question)
}

// Responder produces a reply for every question; it never returns an error.
type Responder struct {
	provider domain.TextProvider
	model    string
	timeout  time.Duration
	log      zerolog.Logger
}

// NewResponder creates a responder. provider may be nil.
func NewResponder(provider domain.TextProvider, model string, timeout time.Duration, log zerolog.Logger) *Responder {
	return &Responder{
		provider: provider,
		model:    model,
		timeout:  timeout,
		log:      log.With().Str("component", "chat_responder").Logger(),
	}
}

// LLMEnabled reports whether replies are delegated to a text provider.
func (r *Responder) LLMEnabled() bool {
	return r.provider != nil
}

// Respond answers question using rows.
func (r *Responder) Respond(ctx context.Context, question string, rows []domain.MetricRow) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error().Interface("panic", rec).Msg("Chat responder panicked")
			reply = FallbackReply(question)
		}
	}()

	if len(rows) == 0 {
		return NoDataReply
	}

	if r.provider != nil {
		delegated, err := r.delegate(ctx, question, rows)
		if err == nil {
			return delegated
		}
		r.log.Warn().Err(err).Msg("LLM chat failed, using rule-based reply")
	}

	return Answer(question, rows)
}

func (r *Responder) delegate(ctx context.Context, question string, rows []domain.MetricRow) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	summaries := make([]string, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, FormatSummary(row))
	}
	dataContext := "Financial data for analysis:\n" + strings.Join(summaries, "\n")

	prompt := fmt.Sprintf(`Based on the following financial data:

%s

Question: %s

Please provide a detailed analysis answering the user's question. Focus on the specific metrics they're asking about and provide context for what the numbers mean.`, dataContext, question)

	reply, err := r.provider.Generate(ctx, domain.TextRequest{
		System:      analystSystemPrompt,
		Prompt:      prompt,
		Model:       r.model,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("empty reply from %s", r.provider.Name())
	}
	return reply, nil
}

// Answer is the rule-based reply. The first matching keyword group decides the answer.
func Answer(question string, rows []domain.MetricRow) string {
	if len(rows) == 0 {
		return NoDataReply
	}

	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "market cap"):
		return answerMarketCap(rows)
	case strings.Contains(q, "debt"):
		return answerDebt(rows)
	case strings.Contains(q, "revenue"):
		return answerRevenue(rows)
	case strings.Contains(q, "pe") || strings.Contains(q, "p/e"):
		return answerPE(rows)
	default:
		return answerOverview(rows)
	}
}

func answerMarketCap(rows []domain.MetricRow) string {
	largest, smallest := rows[0], rows[0]
	for _, row := range rows[1:] {
		if row.MarketCap > largest.MarketCap {
			largest = row
		}
		if row.MarketCap < smallest.MarketCap {
			smallest = row
		}
	}

	return fmt.Sprintf("%s has the largest market cap at %s, while %s has the smallest at %s.",
		largest.Ticker, FormatMoney(largest.MarketCap), smallest.Ticker, FormatMoney(smallest.MarketCap))
}

func answerDebt(rows []domain.MetricRow) string {
	lines := []string{"Debt and cash positions:"}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s: Debt %s, Cash %s", row.Ticker, FormatMoney(row.Debt), FormatMoney(row.Cash)))
	}
	return strings.Join(lines, "\n")
}

func answerRevenue(rows []domain.MetricRow) string {
	sorted := append([]domain.MetricRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Revenue > sorted[j].Revenue
	})

	lines := []string{"Companies ranked by revenue (LTM):"}
	for i, row := range sorted {
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, row.Ticker, FormatMoney(row.Revenue)))
	}
	return strings.Join(lines, "\n")
}

func answerPE(rows []domain.MetricRow) string {
	var positive []domain.MetricRow
	for _, row := range rows {
		if row.PELTM > 0 {
			positive = append(positive, row)
		}
	}
	if len(positive) == 0 {
		return "None of these companies has a positive trailing P/E ratio, which usually means earnings are negative or not reported."
	}

	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].PELTM < positive[j].PELTM
	})

	lines := []string{"P/E ratios (LTM), lowest first:"}
	for i, row := range positive {
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, row.Ticker, FormatMultiple(row.PELTM)))
	}
	return strings.Join(lines, "\n")
}

func answerOverview(rows []domain.MetricRow) string {
	lines := []string{"Here's a quick comparison of the companies:"}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s: Market Cap %s, EV %s, EV/Revenue %s, P/E %s",
			row.Ticker,
			FormatMoney(row.MarketCap),
			FormatMoney(row.EV),
			FormatMultiple(row.EVRevenueLTM),
			FormatMultiple(row.PELTM)))
	}
	return strings.Join(lines, "\n")
}
