package journal

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/trademind/journal/internal/domain"
)

// EquityPoint is one step of the cumulative PnL series. Seq is 1-based in
// ingestion order; PnL is the trade's own result, CumulativePnL the running
// total up to and including it.
type EquityPoint struct {
	Seq           int             `json:"seq"`
	Date          string          `json:"date"`
	CumulativePnL decimal.Decimal `json:"cumulative_pnl"`
	PnL           decimal.Decimal `json:"pnl"`
}

// EquityCurve produces the chart series, one point per trade, ordered by
// CreatedAt ascending. The sort is stable so trades sharing a CreatedAt
// keep their relative input order. The input slice is not modified.
func EquityCurve(trades []domain.Trade) []EquityPoint {
	sorted := make([]domain.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	curve := make([]EquityPoint, 0, len(sorted))
	var running decimal.Decimal
	for i, t := range sorted {
		running = running.Add(t.PnL)
		curve = append(curve, EquityPoint{
			Seq:           i + 1,
			Date:          t.Date,
			CumulativePnL: running,
			PnL:           t.PnL,
		})
	}
	return curve
}
