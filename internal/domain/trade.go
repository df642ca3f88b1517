package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

func (d Direction) Valid() bool {
	return d == DirectionLong || d == DirectionShort
}

type Outcome string

const (
	OutcomeWin       Outcome = "WIN"
	OutcomeLoss      Outcome = "LOSS"
	OutcomeBreakEven Outcome = "BREAK_EVEN"
)

func (o Outcome) Valid() bool {
	return o == OutcomeWin || o == OutcomeLoss || o == OutcomeBreakEven
}

// Trade is a single journal entry. Date is the calendar day the trade was
// taken (YYYY-MM-DD), CreatedAt is the ingestion timestamp and drives the
// equity curve ordering.
type Trade struct {
	ID            string           `db:"id" json:"id"`
	UserID        string           `db:"user_id" json:"userId"`
	Date          string           `db:"date" json:"date"`
	Instrument    string           `db:"instrument" json:"instrument"`
	Direction     Direction        `db:"direction" json:"direction"`
	Outcome       Outcome          `db:"outcome" json:"outcome"`
	PnL           decimal.Decimal  `db:"pnl" json:"pnl"`
	EntryPrice    *decimal.Decimal `db:"entry_price" json:"entryPrice,omitempty"`
	ExitPrice     *decimal.Decimal `db:"exit_price" json:"exitPrice,omitempty"`
	Setup         string           `db:"setup" json:"setup,omitempty"`
	Notes         string           `db:"notes" json:"notes"`
	ScreenshotURL string           `db:"screenshot_url" json:"screenshotUrl,omitempty"`
	AIAnalysis    string           `db:"ai_analysis" json:"aiAnalysis,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
}

// Validate checks the boundary invariants. PnL sign is deliberately not
// checked against Outcome: a BREAK_EVEN trade may carry nonzero PnL.
func (t *Trade) Validate() error {
	if strings.TrimSpace(t.Instrument) == "" {
		return fmt.Errorf("%w: instrument is required", ErrValidation)
	}
	if err := ValidateDate(t.Date); err != nil {
		return err
	}
	if !t.Direction.Valid() {
		return fmt.Errorf("%w: direction must be LONG or SHORT", ErrValidation)
	}
	if !t.Outcome.Valid() {
		return fmt.Errorf("%w: outcome must be WIN, LOSS or BREAK_EVEN", ErrValidation)
	}
	return nil
}

// ValidateDate accepts ISO calendar dates only (no time component), so that
// lexicographic comparison stays chronological everywhere downstream.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}

// TradePatch carries a partial update. Nil fields are left untouched,
// matching last-write-wins merge semantics.
type TradePatch struct {
	Date          *string          `json:"date"`
	Instrument    *string          `json:"instrument"`
	Direction     *Direction       `json:"direction"`
	Outcome       *Outcome         `json:"outcome"`
	PnL           *decimal.Decimal `json:"pnl"`
	EntryPrice    *decimal.Decimal `json:"entryPrice"`
	ExitPrice     *decimal.Decimal `json:"exitPrice"`
	Setup         *string          `json:"setup"`
	Notes         *string          `json:"notes"`
	ScreenshotURL *string          `json:"screenshotUrl"`
	AIAnalysis    *string          `json:"aiAnalysis"`
}

// Apply merges the patch into the trade. ID, UserID and CreatedAt are
// immutable and have no corresponding patch fields.
func (p *TradePatch) Apply(t *Trade) {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Instrument != nil {
		t.Instrument = *p.Instrument
	}
	if p.Direction != nil {
		t.Direction = *p.Direction
	}
	if p.Outcome != nil {
		t.Outcome = *p.Outcome
	}
	if p.PnL != nil {
		t.PnL = *p.PnL
	}
	if p.EntryPrice != nil {
		t.EntryPrice = p.EntryPrice
	}
	if p.ExitPrice != nil {
		t.ExitPrice = p.ExitPrice
	}
	if p.Setup != nil {
		t.Setup = *p.Setup
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.ScreenshotURL != nil {
		t.ScreenshotURL = *p.ScreenshotURL
	}
	if p.AIAnalysis != nil {
		t.AIAnalysis = *p.AIAnalysis
	}
}

// TradeFilter narrows a journal listing. Empty fields are unconstrained;
// Outcome accepts "" or "ALL" as pass-through.
type TradeFilter struct {
	StartDate string
	EndDate   string
	Outcome   string
}

func (f TradeFilter) Validate() error {
	if f.StartDate != "" {
		if err := ValidateDate(f.StartDate); err != nil {
			return err
		}
	}
	if f.EndDate != "" {
		if err := ValidateDate(f.EndDate); err != nil {
			return err
		}
	}
	switch f.Outcome {
	case "", "ALL", string(OutcomeWin), string(OutcomeLoss), string(OutcomeBreakEven):
		return nil
	}
	return fmt.Errorf("%w: outcome filter must be ALL, WIN, LOSS or BREAK_EVEN", ErrValidation)
}
