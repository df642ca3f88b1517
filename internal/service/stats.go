package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/trademind/journal/internal/domain"
	"github.com/trademind/journal/internal/journal"
	"github.com/trademind/journal/internal/storage/cache"
	"github.com/trademind/journal/pkg/logger"
	"github.com/trademind/journal/pkg/metrics"
)

// StatsBundle is the cached unit: the KPI bundle plus the chart series for
// one owner and date range. Stats is nil when the range holds no trades.
type StatsBundle struct {
	Stats       *journal.Stats        `json:"stats"`
	EquityCurve []journal.EquityPoint `json:"equity_curve"`
	Count       int                   `json:"count"`
}

type StatsService struct {
	trades *TradeService
	cache  *cache.RedisCache
}

// NewStatsService wires the derived-statistics path. cacheService may be
// nil; the service then recomputes on every request.
func NewStatsService(trades *TradeService, cacheService *cache.RedisCache) *StatsService {
	return &StatsService{
		trades: trades,
		cache:  cacheService,
	}
}

// GetStats returns the KPI bundle for the owner's trades within the
// optional date range. The second return reports whether the bundle came
// from cache.
func (s *StatsService) GetStats(ctx context.Context, userID string, filter domain.TradeFilter) (*StatsBundle, bool, error) {
	key := cache.StatsKey(userID, filter.StartDate, filter.EndDate)

	if s.cache != nil {
		var cached StatsBundle
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			metrics.RecordCacheHit()
			metrics.RecordStatsRequest(true)
			return &cached, true, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn("stats cache read failed", zap.Error(err))
		}
		metrics.RecordCacheMiss()
	}

	trades, err := s.trades.List(ctx, userID, domain.TradeFilter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	})
	if err != nil {
		return nil, false, err
	}

	bundle := &StatsBundle{
		Stats:       journal.Compute(trades),
		EquityCurve: journal.EquityCurve(trades),
		Count:       len(trades),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, bundle); err != nil {
			logger.Warn("stats cache write failed", zap.Error(err))
		}
	}

	metrics.RecordStatsRequest(false)
	return bundle, false, nil
}

// Invalidate drops every cached range for the owner. Called after any trade
// mutation; a failure only costs a recomputation.
func (s *StatsService) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, cache.StatsPattern(userID)); err != nil {
		logger.Warn("stats cache invalidation failed",
			zap.String("user_id", userID),
			zap.Error(err))
	}
}
