package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/trademind/journal/internal/domain"
	"github.com/trademind/journal/internal/journal"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type CreateTradeRequest struct {
	Date          string           `json:"date"`
	Instrument    string           `json:"instrument"`
	Direction     domain.Direction `json:"direction"`
	Outcome       domain.Outcome   `json:"outcome"`
	PnL           decimal.Decimal  `json:"pnl"`
	EntryPrice    *decimal.Decimal `json:"entryPrice"`
	ExitPrice     *decimal.Decimal `json:"exitPrice"`
	Setup         string           `json:"setup"`
	Notes         string           `json:"notes"`
	ScreenshotURL string           `json:"screenshotUrl"`
}

func (r *CreateTradeRequest) Trade() *domain.Trade {
	return &domain.Trade{
		Date:          r.Date,
		Instrument:    r.Instrument,
		Direction:     r.Direction,
		Outcome:       r.Outcome,
		PnL:           r.PnL,
		EntryPrice:    r.EntryPrice,
		ExitPrice:     r.ExitPrice,
		Setup:         r.Setup,
		Notes:         r.Notes,
		ScreenshotURL: r.ScreenshotURL,
	}
}

type TradeListResponse struct {
	Trades []domain.Trade `json:"trades"`
	Count  int            `json:"count"`
}

type StatsResponse struct {
	Stats       *journal.Stats        `json:"stats"`
	EquityCurve []journal.EquityPoint `json:"equity_curve"`
	Count       int                   `json:"count"`
	CacheHit    bool                  `json:"cache_hit"`
}

type AnalysisResponse struct {
	ID         string `json:"id"`
	AIAnalysis string `json:"aiAnalysis"`
	Cached     bool   `json:"cached"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      int       `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthResponse struct {
	Status    string                   `json:"status"`
	Version   string                   `json:"version"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

type ServiceHealth struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}
