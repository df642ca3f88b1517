package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTrade() Trade {
	return Trade{
		Date:       "2024-02-01",
		Instrument: "BTCUSD",
		Direction:  DirectionShort,
		Outcome:    OutcomeLoss,
		PnL:        decimal.NewFromInt(-150),
	}
}

func TestTradeValidate(t *testing.T) {
	tr := validTrade()
	require.NoError(t, tr.Validate())

	tests := []struct {
		name   string
		mutate func(*Trade)
	}{
		{"empty instrument", func(tr *Trade) { tr.Instrument = "  " }},
		{"bad date format", func(tr *Trade) { tr.Date = "01/02/2024" }},
		{"date with time component", func(tr *Trade) { tr.Date = "2024-02-01T10:00:00Z" }},
		{"unknown direction", func(tr *Trade) { tr.Direction = "SIDEWAYS" }},
		{"unknown outcome", func(tr *Trade) { tr.Outcome = "DRAW" }},
		{"lowercase outcome", func(tr *Trade) { tr.Outcome = "win" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := validTrade()
			tc.mutate(&tr)
			err := tr.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestTradeValidatePnLSignUncorrelated(t *testing.T) {
	// A BREAK_EVEN trade may carry nonzero PnL; a WIN may be negative.
	tr := validTrade()
	tr.Outcome = OutcomeBreakEven
	tr.PnL = decimal.NewFromInt(37)
	assert.NoError(t, tr.Validate())

	tr.Outcome = OutcomeWin
	tr.PnL = decimal.NewFromInt(-5)
	assert.NoError(t, tr.Validate())
}

func TestTradePatchApply(t *testing.T) {
	tr := validTrade()
	tr.ID = "id-1"
	tr.UserID = "user-1"
	tr.Notes = "rushed the entry"

	newOutcome := OutcomeWin
	newPnL := decimal.NewFromInt(220)
	newNotes := "held to target"
	patch := TradePatch{
		Outcome: &newOutcome,
		PnL:     &newPnL,
		Notes:   &newNotes,
	}

	patch.Apply(&tr)

	assert.Equal(t, OutcomeWin, tr.Outcome)
	assert.True(t, tr.PnL.Equal(decimal.NewFromInt(220)))
	assert.Equal(t, "held to target", tr.Notes)
	// Untouched fields survive the merge.
	assert.Equal(t, "BTCUSD", tr.Instrument)
	assert.Equal(t, "id-1", tr.ID)
	assert.Equal(t, "user-1", tr.UserID)
}

func TestTradeFilterValidate(t *testing.T) {
	assert.NoError(t, TradeFilter{}.Validate())
	assert.NoError(t, TradeFilter{Outcome: "ALL"}.Validate())
	assert.NoError(t, TradeFilter{Outcome: "BREAK_EVEN", StartDate: "2024-01-01"}.Validate())

	assert.Error(t, TradeFilter{Outcome: "INVALID"}.Validate())
	assert.Error(t, TradeFilter{StartDate: "Jan 1"}.Validate())
	assert.Error(t, TradeFilter{EndDate: "2024-13-40"}.Validate())
}
