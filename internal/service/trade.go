package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/trademind/journal/internal/domain"
	"github.com/trademind/journal/pkg/logger"
	"github.com/trademind/journal/pkg/metrics"
)

type TradeService struct {
	pool *pgxpool.Pool
}

func NewTradeService(pool *pgxpool.Pool) *TradeService {
	return &TradeService{pool: pool}
}

const tradeColumns = `
	id,
	user_id,
	date,
	instrument,
	direction,
	outcome,
	pnl,
	entry_price,
	exit_price,
	setup,
	notes,
	screenshot_url,
	ai_analysis,
	created_at
`

// List returns the owner's trades in ingestion order descending. Date
// bounds are inclusive and applied server-side; the outcome predicate is
// left to the pure filter so the stored order is untouched.
func (s *TradeService) List(ctx context.Context, userID string, filter domain.TradeFilter) ([]domain.Trade, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.DatabaseQueryDuration.WithLabelValues("list_trades"))

	query := `SELECT ` + tradeColumns + ` FROM trades WHERE user_id = $1`

	args := []interface{}{userID}
	argCount := 1

	if filter.StartDate != "" {
		argCount++
		query += fmt.Sprintf(" AND date >= $%d", argCount)
		args = append(args, filter.StartDate)
	}

	if filter.EndDate != "" {
		argCount++
		query += fmt.Sprintf(" AND date <= $%d", argCount)
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		metrics.DatabaseQueries.WithLabelValues("list_trades", "error").Inc()
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	trades := make([]domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, *trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trades: %w", err)
	}

	metrics.DatabaseQueries.WithLabelValues("list_trades", "success").Inc()
	return trades, nil
}

// Get loads one trade, owner-scoped. A trade belonging to another user is
// reported as not found, never as forbidden.
func (s *TradeService) Get(ctx context.Context, userID, tradeID string) (*domain.Trade, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE id = $1 AND user_id = $2`,
		tradeID, userID)

	trade, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTradeNotFound
		}
		return nil, err
	}
	return trade, nil
}

// Create validates, assigns id and ingestion timestamp, and persists.
func (s *TradeService) Create(ctx context.Context, userID string, trade *domain.Trade) (*domain.Trade, error) {
	trade.ID = uuid.NewString()
	trade.UserID = userID
	trade.CreatedAt = time.Now().UTC()

	if err := trade.Validate(); err != nil {
		metrics.RecordTradeMutation("create", "invalid")
		return nil, err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO trades (
			id, user_id, date, instrument, direction, outcome, pnl,
			entry_price, exit_price, setup, notes, screenshot_url, ai_analysis, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		trade.ID, trade.UserID, trade.Date, trade.Instrument, trade.Direction,
		trade.Outcome, trade.PnL, trade.EntryPrice, trade.ExitPrice,
		trade.Setup, trade.Notes, trade.ScreenshotURL, trade.AIAnalysis, trade.CreatedAt)
	if err != nil {
		metrics.RecordTradeMutation("create", "error")
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	metrics.RecordTradeMutation("create", "success")
	logger.Info("trade created",
		zap.String("trade_id", trade.ID),
		zap.String("user_id", userID),
		zap.String("instrument", trade.Instrument))
	return trade, nil
}

// Update merges the patch into the stored record and writes it back.
// Last write wins; there is no optimistic concurrency token.
func (s *TradeService) Update(ctx context.Context, userID, tradeID string, patch *domain.TradePatch) (*domain.Trade, error) {
	trade, err := s.Get(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}

	patch.Apply(trade)

	if err := trade.Validate(); err != nil {
		metrics.RecordTradeMutation("update", "invalid")
		return nil, err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE trades SET
			date = $3, instrument = $4, direction = $5, outcome = $6, pnl = $7,
			entry_price = $8, exit_price = $9, setup = $10, notes = $11,
			screenshot_url = $12, ai_analysis = $13
		WHERE id = $1 AND user_id = $2`,
		trade.ID, userID, trade.Date, trade.Instrument, trade.Direction,
		trade.Outcome, trade.PnL, trade.EntryPrice, trade.ExitPrice,
		trade.Setup, trade.Notes, trade.ScreenshotURL, trade.AIAnalysis)
	if err != nil {
		metrics.RecordTradeMutation("update", "error")
		return nil, fmt.Errorf("failed to update trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTradeNotFound
	}

	metrics.RecordTradeMutation("update", "success")
	return trade, nil
}

// Delete removes the trade permanently.
func (s *TradeService) Delete(ctx context.Context, userID, tradeID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM trades WHERE id = $1 AND user_id = $2`, tradeID, userID)
	if err != nil {
		metrics.RecordTradeMutation("delete", "error")
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTradeNotFound
	}

	metrics.RecordTradeMutation("delete", "success")
	logger.Info("trade deleted",
		zap.String("trade_id", tradeID),
		zap.String("user_id", userID))
	return nil
}

// SaveAnalysis caches an AI critique on the trade record.
func (s *TradeService) SaveAnalysis(ctx context.Context, userID, tradeID, analysis string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE trades SET ai_analysis = $3 WHERE id = $1 AND user_id = $2`,
		tradeID, userID, analysis)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTradeNotFound
	}
	return nil
}

// ClearAnalysis drops the cached critique so a fresh one can be requested.
func (s *TradeService) ClearAnalysis(ctx context.Context, userID, tradeID string) (*domain.Trade, error) {
	if err := s.SaveAnalysis(ctx, userID, tradeID, ""); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, tradeID)
}

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var trade domain.Trade
	err := row.Scan(
		&trade.ID,
		&trade.UserID,
		&trade.Date,
		&trade.Instrument,
		&trade.Direction,
		&trade.Outcome,
		&trade.PnL,
		&trade.EntryPrice,
		&trade.ExitPrice,
		&trade.Setup,
		&trade.Notes,
		&trade.ScreenshotURL,
		&trade.AIAnalysis,
		&trade.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan trade: %w", err)
	}
	return &trade, nil
}
