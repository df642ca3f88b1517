package journal

import (
	"strings"

	"github.com/trademind/journal/internal/domain"
)

// Filter applies the outcome and inclusive date-range predicates in
// conjunction, preserving input order. Dates are compared lexicographically
// on the date portion only, which is chronological for ISO dates. It never
// errors: unknown filter values were rejected at the boundary.
func Filter(trades []domain.Trade, f domain.TradeFilter) []domain.Trade {
	out := make([]domain.Trade, 0, len(trades))
	for _, t := range trades {
		if !matchOutcome(t, f.Outcome) {
			continue
		}
		if !matchDateRange(t, f.StartDate, f.EndDate) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchOutcome(t domain.Trade, outcome string) bool {
	if outcome == "" || outcome == "ALL" {
		return true
	}
	return string(t.Outcome) == outcome
}

func matchDateRange(t domain.Trade, start, end string) bool {
	date := datePortion(t.Date)
	if start != "" && date < start {
		return false
	}
	if end != "" && date > end {
		return false
	}
	return true
}

// datePortion strips any time component a legacy record may carry.
func datePortion(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}
