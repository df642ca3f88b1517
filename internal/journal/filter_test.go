package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trademind/journal/internal/domain"
)

func journalFixture() []domain.Trade {
	mk := func(date string, outcome domain.Outcome) domain.Trade {
		t := trade(0, outcome)
		t.Date = date
		return t
	}
	return []domain.Trade{
		mk("2024-01-20", domain.OutcomeWin),
		mk("2024-01-18", domain.OutcomeLoss),
		mk("2024-01-18", domain.OutcomeBreakEven),
		mk("2024-01-15", domain.OutcomeWin),
		mk("2024-01-10", domain.OutcomeLoss),
	}
}

func TestFilterPassThrough(t *testing.T) {
	trades := journalFixture()

	for _, outcome := range []string{"", "ALL"} {
		got := Filter(trades, domain.TradeFilter{Outcome: outcome})
		require.Len(t, got, len(trades))
		for i := range trades {
			assert.Equal(t, trades[i].Date, got[i].Date, "order must be preserved")
			assert.Equal(t, trades[i].Outcome, got[i].Outcome)
		}
	}
}

func TestFilterByOutcome(t *testing.T) {
	trades := journalFixture()

	wins := Filter(trades, domain.TradeFilter{Outcome: "WIN"})
	require.Len(t, wins, 2)
	assert.Equal(t, "2024-01-20", wins[0].Date)
	assert.Equal(t, "2024-01-15", wins[1].Date)

	be := Filter(trades, domain.TradeFilter{Outcome: "BREAK_EVEN"})
	require.Len(t, be, 1)
	assert.Equal(t, domain.OutcomeBreakEven, be[0].Outcome)
}

func TestFilterByDateRange(t *testing.T) {
	trades := journalFixture()

	got := Filter(trades, domain.TradeFilter{StartDate: "2024-01-15", EndDate: "2024-01-18"})
	require.Len(t, got, 3)
	assert.Equal(t, "2024-01-18", got[0].Date)
	assert.Equal(t, "2024-01-18", got[1].Date)
	assert.Equal(t, "2024-01-15", got[2].Date)

	// Open-ended bounds.
	fromOnly := Filter(trades, domain.TradeFilter{StartDate: "2024-01-18"})
	assert.Len(t, fromOnly, 3)

	untilOnly := Filter(trades, domain.TradeFilter{EndDate: "2024-01-14"})
	assert.Len(t, untilOnly, 1)
}

func TestFilterSingleDay(t *testing.T) {
	trades := journalFixture()

	got := Filter(trades, domain.TradeFilter{StartDate: "2024-01-18", EndDate: "2024-01-18"})
	require.Len(t, got, 2)
	for _, tr := range got {
		assert.Equal(t, "2024-01-18", tr.Date)
	}
}

func TestFilterConjunction(t *testing.T) {
	trades := journalFixture()

	got := Filter(trades, domain.TradeFilter{
		Outcome:   "LOSS",
		StartDate: "2024-01-15",
		EndDate:   "2024-01-20",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-18", got[0].Date)
}

func TestFilterStripsTimeComponent(t *testing.T) {
	legacy := trade(0, domain.OutcomeWin)
	legacy.Date = "2024-01-18T14:30:00"

	got := Filter([]domain.Trade{legacy}, domain.TradeFilter{StartDate: "2024-01-18", EndDate: "2024-01-18"})
	assert.Len(t, got, 1)
}

func TestFilterNoMatch(t *testing.T) {
	got := Filter(journalFixture(), domain.TradeFilter{StartDate: "2025-01-01"})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
