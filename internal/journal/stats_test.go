package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trademind/journal/internal/domain"
)

func trade(pnl float64, outcome domain.Outcome) domain.Trade {
	return domain.Trade{
		Date:       "2024-01-15",
		Instrument: "NQ_F",
		Direction:  domain.DirectionLong,
		Outcome:    outcome,
		PnL:        decimal.NewFromFloat(pnl),
	}
}

func TestComputeEmptyJournal(t *testing.T) {
	assert.Nil(t, Compute(nil))
	assert.Nil(t, Compute([]domain.Trade{}))
}

func TestComputeKPIBundle(t *testing.T) {
	trades := []domain.Trade{
		trade(100, domain.OutcomeWin),
		trade(-40, domain.OutcomeLoss),
		trade(0, domain.OutcomeBreakEven),
	}

	stats := Compute(trades)
	require.NotNil(t, stats)

	assert.Equal(t, 3, stats.TotalTrades)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.True(t, stats.TotalPnL.Equal(decimal.NewFromInt(60)), "total pnl = %s", stats.TotalPnL)
	assert.InDelta(t, 33.33, stats.WinRate, 0.01)
	assert.True(t, stats.AvgWin.Equal(decimal.NewFromInt(100)))
	assert.True(t, stats.AvgLoss.Equal(decimal.NewFromInt(40)))
	assert.InDelta(t, 2.5, stats.ProfitFactor, 1e-9)
	assert.True(t, stats.BestWin.Equal(decimal.NewFromInt(100)))
	assert.True(t, stats.WorstLoss.Equal(decimal.NewFromInt(-40)))
}

func TestComputeNoLossesProfitFactorIsZero(t *testing.T) {
	trades := []domain.Trade{
		trade(50, domain.OutcomeWin),
		trade(75, domain.OutcomeWin),
		trade(5, domain.OutcomeBreakEven),
	}

	stats := Compute(trades)
	require.NotNil(t, stats)

	assert.Equal(t, 0.0, stats.ProfitFactor)
	assert.True(t, stats.AvgLoss.IsZero())
	assert.True(t, stats.WorstLoss.IsZero())
}

func TestComputeWinRateBounds(t *testing.T) {
	allWins := []domain.Trade{
		trade(10, domain.OutcomeWin),
		trade(20, domain.OutcomeWin),
	}
	stats := Compute(allWins)
	require.NotNil(t, stats)
	assert.Equal(t, 100.0, stats.WinRate)

	mixed := append(allWins, trade(-5, domain.OutcomeLoss))
	stats = Compute(mixed)
	require.NotNil(t, stats)
	assert.Less(t, stats.WinRate, 100.0)
	assert.Greater(t, stats.WinRate, 0.0)

	allLosses := []domain.Trade{
		trade(-10, domain.OutcomeLoss),
	}
	stats = Compute(allLosses)
	require.NotNil(t, stats)
	assert.Equal(t, 0.0, stats.WinRate)
}

func TestComputeOrderIndependence(t *testing.T) {
	forward := []domain.Trade{
		trade(120.5, domain.OutcomeWin),
		trade(-60.25, domain.OutcomeLoss),
		trade(30, domain.OutcomeWin),
		trade(-10.75, domain.OutcomeLoss),
	}
	reversed := []domain.Trade{forward[3], forward[2], forward[1], forward[0]}

	a := Compute(forward)
	b := Compute(reversed)
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.True(t, a.TotalPnL.Equal(b.TotalPnL))
	assert.Equal(t, a.WinRate, b.WinRate)
	assert.Equal(t, a.ProfitFactor, b.ProfitFactor)
	assert.True(t, a.AvgWin.Equal(b.AvgWin))
	assert.True(t, a.AvgLoss.Equal(b.AvgLoss))
}

func TestComputeBreakEvenWithNonzeroPnL(t *testing.T) {
	// Outcome is not required to correlate with PnL sign.
	trades := []domain.Trade{
		trade(12, domain.OutcomeBreakEven),
		trade(100, domain.OutcomeWin),
	}

	stats := Compute(trades)
	require.NotNil(t, stats)

	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 0, stats.Losses)
	assert.True(t, stats.TotalPnL.Equal(decimal.NewFromInt(112)))
	assert.Equal(t, 50.0, stats.WinRate)
}

func TestEquityCurve(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	trades := []domain.Trade{
		trade(-40, domain.OutcomeLoss),
		trade(100, domain.OutcomeWin),
		trade(25, domain.OutcomeWin),
	}
	// Ingestion order differs from slice order.
	trades[0].CreatedAt = base.Add(2 * time.Hour)
	trades[0].Date = "2024-01-17"
	trades[1].CreatedAt = base
	trades[1].Date = "2024-01-15"
	trades[2].CreatedAt = base.Add(time.Hour)
	trades[2].Date = "2024-01-16"

	curve := EquityCurve(trades)
	require.Len(t, curve, 3)

	assert.Equal(t, 1, curve[0].Seq)
	assert.Equal(t, 2, curve[1].Seq)
	assert.Equal(t, 3, curve[2].Seq)

	assert.Equal(t, "2024-01-15", curve[0].Date)
	assert.Equal(t, "2024-01-16", curve[1].Date)
	assert.Equal(t, "2024-01-17", curve[2].Date)

	assert.True(t, curve[0].CumulativePnL.Equal(decimal.NewFromInt(100)))
	assert.True(t, curve[1].CumulativePnL.Equal(decimal.NewFromInt(125)))
	assert.True(t, curve[2].CumulativePnL.Equal(decimal.NewFromInt(85)))

	// Last cumulative value equals the stats total.
	stats := Compute(trades)
	require.NotNil(t, stats)
	assert.True(t, curve[2].CumulativePnL.Equal(stats.TotalPnL))

	// Input order untouched.
	assert.Equal(t, "2024-01-17", trades[0].Date)
}

func TestEquityCurveStableOnCreatedAtTies(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	trades := []domain.Trade{
		trade(10, domain.OutcomeWin),
		trade(20, domain.OutcomeWin),
		trade(30, domain.OutcomeWin),
	}
	for i := range trades {
		trades[i].CreatedAt = ts
		trades[i].Instrument = []string{"AAPL", "MSFT", "BTCUSD"}[i]
	}

	curve := EquityCurve(trades)
	require.Len(t, curve, 3)

	// Ties keep the original relative order.
	assert.True(t, curve[0].PnL.Equal(decimal.NewFromInt(10)))
	assert.True(t, curve[1].PnL.Equal(decimal.NewFromInt(20)))
	assert.True(t, curve[2].PnL.Equal(decimal.NewFromInt(30)))
}

func TestEquityCurveEmpty(t *testing.T) {
	assert.Empty(t, EquityCurve(nil))
}
