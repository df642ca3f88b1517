package service

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/trademind/journal/internal/domain"
	"github.com/trademind/journal/pkg/logger"
	"github.com/trademind/journal/pkg/metrics"
)

const analysisSystemPrompt = "You are a professional trading psychologist and technical analyst. " +
	"Analyze the trade based on the provided data and chart (if available). " +
	"Provide: 1. Technical feedback: was the entry valid based on standard price action? " +
	"2. Psychological feedback, based on the notes and outcome. " +
	"3. Improvement area: one specific thing to focus on next time. " +
	"Keep the response concise, encouraging, yet critical where necessary. Format with Markdown."

type AnalysisService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	trades  *TradeService
	stats   *StatsService
}

// NewAnalysisService builds the AI critique path. With an empty API key the
// service stays up but every request degrades to ErrAnalysisUnavailable.
func NewAnalysisService(apiKey, model string, timeout time.Duration, trades *TradeService, stats *StatsService) *AnalysisService {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &AnalysisService{
		client:  client,
		model:   model,
		timeout: timeout,
		trades:  trades,
		stats:   stats,
	}
}

// Analyze returns the critique for a trade, generating and caching it on
// the record the first time. The second return reports whether a cached
// critique was served. A failed upstream call leaves the trade untouched.
func (s *AnalysisService) Analyze(ctx context.Context, userID, tradeID string) (string, bool, error) {
	trade, err := s.trades.Get(ctx, userID, tradeID)
	if err != nil {
		return "", false, err
	}

	if trade.AIAnalysis != "" {
		metrics.RecordAnalysisRequest("cached", 0)
		return trade.AIAnalysis, true, nil
	}

	if s.client == nil {
		metrics.RecordAnalysisRequest("unconfigured", 0)
		return "", false, domain.ErrAnalysisUnavailable
	}

	start := time.Now()
	analysis, err := s.generate(ctx, trade)
	if err != nil {
		metrics.RecordAnalysisRequest("error", time.Since(start))
		logger.Error("AI critique failed",
			zap.String("trade_id", tradeID),
			zap.Error(err))
		return "", false, fmt.Errorf("%w: %v", domain.ErrAnalysisUnavailable, err)
	}
	metrics.RecordAnalysisRequest("success", time.Since(start))

	if err := s.trades.SaveAnalysis(ctx, userID, tradeID, analysis); err != nil {
		return "", false, err
	}
	if s.stats != nil {
		s.stats.Invalidate(ctx, userID)
	}

	return analysis, false, nil
}

func (s *AnalysisService) generate(ctx context.Context, trade *domain.Trade) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	parts := []openai.ChatMessagePart{
		{
			Type: openai.ChatMessagePartTypeText,
			Text: buildPrompt(trade),
		},
	}
	if trade.ScreenshotURL != "" {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: trade.ScreenshotURL,
			},
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisSystemPrompt},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildPrompt(trade *domain.Trade) string {
	setup := trade.Setup
	if setup == "" {
		setup = "N/A"
	}
	return fmt.Sprintf(`Trade details:
- Date: %s
- Instrument: %s
- Direction: %s
- Outcome: %s
- PnL: %s
- Setup: %s
- Trader notes: %q`,
		trade.Date, trade.Instrument, trade.Direction, trade.Outcome,
		trade.PnL.String(), setup, trade.Notes)
}
