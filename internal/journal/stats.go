// Package journal holds the pure statistics and filtering engine. Every
// function here is a total function over an in-memory trade slice: no I/O,
// no errors, safe to recompute at will.
package journal

import (
	"github.com/shopspring/decimal"

	"github.com/trademind/journal/internal/domain"
)

// Stats is the KPI bundle rendered on the dashboard. BREAK_EVEN trades
// count toward TotalTrades and TotalPnL but toward neither Wins nor Losses.
type Stats struct {
	TotalTrades  int             `json:"total_trades"`
	Wins         int             `json:"wins"`
	Losses       int             `json:"losses"`
	TotalPnL     decimal.Decimal `json:"total_pnl"`
	WinRate      float64         `json:"win_rate"`
	AvgWin       decimal.Decimal `json:"avg_win"`
	AvgLoss      decimal.Decimal `json:"avg_loss"`
	ProfitFactor float64         `json:"profit_factor"`
	BestWin      decimal.Decimal `json:"best_win"`
	WorstLoss    decimal.Decimal `json:"worst_loss"`
}

// Compute derives the KPI bundle from a trade slice. An empty slice yields
// nil rather than zeroed stats so callers can render an onboarding state
// instead of a misleading all-zero dashboard. The result is independent of
// input order.
func Compute(trades []domain.Trade) *Stats {
	if len(trades) == 0 {
		return nil
	}

	var (
		wins, losses           int
		totalPnL               decimal.Decimal
		grossProfit, grossLoss decimal.Decimal
		bestWin, worstLoss     decimal.Decimal
	)

	for _, t := range trades {
		totalPnL = totalPnL.Add(t.PnL)

		switch t.Outcome {
		case domain.OutcomeWin:
			wins++
			grossProfit = grossProfit.Add(t.PnL)
			if t.PnL.GreaterThan(bestWin) {
				bestWin = t.PnL
			}
		case domain.OutcomeLoss:
			losses++
			grossLoss = grossLoss.Add(t.PnL)
			if t.PnL.LessThan(worstLoss) {
				worstLoss = t.PnL
			}
		}
	}

	stats := &Stats{
		TotalTrades: len(trades),
		Wins:        wins,
		Losses:      losses,
		TotalPnL:    totalPnL,
		WinRate:     float64(wins) / float64(len(trades)) * 100,
		BestWin:     bestWin,
		WorstLoss:   worstLoss,
	}

	if wins > 0 {
		stats.AvgWin = grossProfit.Div(decimal.NewFromInt(int64(wins)))
	}
	if losses > 0 {
		stats.AvgLoss = grossLoss.Div(decimal.NewFromInt(int64(losses))).Abs()
	}

	// A journal with no losing money must yield 0, never Inf or NaN.
	if !grossLoss.IsZero() {
		stats.ProfitFactor, _ = grossProfit.Div(grossLoss.Abs()).Float64()
	}

	return stats
}
