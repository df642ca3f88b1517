package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/trademind/journal/internal/domain"
	"github.com/trademind/journal/internal/journal"
	"github.com/trademind/journal/internal/service"
	"github.com/trademind/journal/internal/storage/cache"
	"github.com/trademind/journal/internal/storage/postgres"
	"github.com/trademind/journal/pkg/logger"
)

type Handler struct {
	db              *postgres.DB
	cacheService    *cache.RedisCache
	authService     *service.AuthService
	tradeService    *service.TradeService
	statsService    *service.StatsService
	analysisService *service.AnalysisService
}

func NewHandler(
	db *postgres.DB,
	cacheService *cache.RedisCache,
	authService *service.AuthService,
	tradeService *service.TradeService,
	statsService *service.StatsService,
	analysisService *service.AnalysisService,
) *Handler {
	return &Handler{
		db:              db,
		cacheService:    cacheService,
		authService:     authService,
		tradeService:    tradeService,
		statsService:    statsService,
		analysisService: analysisService,
	}
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	token, user, err := h.authService.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return h.fail(c, fiber.StatusBadRequest, "User already exists")
		case errors.Is(err, domain.ErrValidation):
			return h.fail(c, fiber.StatusBadRequest, err.Error())
		}
		logger.Error("registration failed", zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "registration failed")
	}

	return c.JSON(AuthResponse{Token: token, User: user})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	token, user, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return h.fail(c, fiber.StatusBadRequest, "User not found")
		case errors.Is(err, domain.ErrInvalidPassword):
			return h.fail(c, fiber.StatusBadRequest, "Invalid password")
		}
		logger.Error("login failed", zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "login failed")
	}

	return c.JSON(AuthResponse{Token: token, User: user})
}

// ListTrades returns the caller's journal, newest first. Date bounds hit
// the store; the outcome predicate runs through the pure filter on the
// fetched slice.
func (h *Handler) ListTrades(c *fiber.Ctx) error {
	filter := domain.TradeFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Outcome:   c.Query("outcome"),
	}
	if err := filter.Validate(); err != nil {
		return h.fail(c, fiber.StatusBadRequest, err.Error())
	}

	trades, err := h.tradeService.List(c.Context(), userID(c), domain.TradeFilter{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	})
	if err != nil {
		logger.Error("failed to list trades", zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "failed to list trades")
	}

	trades = journal.Filter(trades, domain.TradeFilter{Outcome: filter.Outcome})

	return c.JSON(trades)
}

func (h *Handler) CreateTrade(c *fiber.Ctx) error {
	var req CreateTradeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	trade, err := h.tradeService.Create(c.Context(), userID(c), req.Trade())
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return h.fail(c, fiber.StatusBadRequest, err.Error())
		}
		logger.Error("failed to create trade", zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "failed to create trade")
	}

	h.statsService.Invalidate(c.Context(), userID(c))

	return c.JSON(trade)
}

func (h *Handler) UpdateTrade(c *fiber.Ctx) error {
	var patch domain.TradePatch
	if err := c.BodyParser(&patch); err != nil {
		return h.fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	trade, err := h.tradeService.Update(c.Context(), userID(c), c.Params("id"), &patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTradeNotFound):
			return h.fail(c, fiber.StatusNotFound, "Trade not found")
		case errors.Is(err, domain.ErrValidation):
			return h.fail(c, fiber.StatusBadRequest, err.Error())
		}
		logger.Error("failed to update trade", zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "failed to update trade")
	}

	h.statsService.Invalidate(c.Context(), userID(c))

	return c.JSON(trade)
}

func (h *Handler) DeleteTrade(c *fiber.Ctx) error {
	err := h.tradeService.Delete(c.Context(), userID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTradeNotFound) {
			return h.fail(c, fiber.StatusNotFound, "Trade not found")
		}
		logger.Error("failed to delete trade", zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "failed to delete trade")
	}

	h.statsService.Invalidate(c.Context(), userID(c))

	return c.JSON(MessageResponse{Message: "Trade deleted"})
}

// GetStats serves the dashboard KPI bundle. Stats is null for an empty
// journal so the client can render its onboarding state.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	filter := domain.TradeFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	if err := filter.Validate(); err != nil {
		return h.fail(c, fiber.StatusBadRequest, err.Error())
	}

	bundle, cacheHit, err := h.statsService.GetStats(c.Context(), userID(c), filter)
	if err != nil {
		logger.Error("failed to compute stats", zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "failed to compute stats")
	}

	return c.JSON(StatsResponse{
		Stats:       bundle.Stats,
		EquityCurve: bundle.EquityCurve,
		Count:       bundle.Count,
		CacheHit:    cacheHit,
	})
}

func (h *Handler) AnalyzeTrade(c *fiber.Ctx) error {
	tradeID := c.Params("id")

	analysis, cached, err := h.analysisService.Analyze(c.Context(), userID(c), tradeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTradeNotFound):
			return h.fail(c, fiber.StatusNotFound, "Trade not found")
		case errors.Is(err, domain.ErrAnalysisUnavailable):
			return h.fail(c, fiber.StatusBadGateway, "Analysis unavailable. Please try again.")
		}
		logger.Error("analysis failed", zap.String("trade_id", tradeID), zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "analysis failed")
	}

	return c.JSON(AnalysisResponse{
		ID:         tradeID,
		AIAnalysis: analysis,
		Cached:     cached,
	})
}

func (h *Handler) ClearAnalysis(c *fiber.Ctx) error {
	trade, err := h.tradeService.ClearAnalysis(c.Context(), userID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTradeNotFound) {
			return h.fail(c, fiber.StatusNotFound, "Trade not found")
		}
		logger.Error("failed to clear analysis", zap.Error(err))
		return h.fail(c, fiber.StatusInternalServerError, "failed to clear analysis")
	}

	return c.JSON(trade)
}

func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Version:   "1.0.0",
		Timestamp: time.Now(),
	})
}

func (h *Handler) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	services := make(map[string]ServiceHealth)

	dbStart := time.Now()
	if err := h.db.HealthCheck(ctx); err != nil {
		services["database"] = ServiceHealth{
			Status: "unhealthy",
			Error:  err.Error(),
		}
	} else {
		services["database"] = ServiceHealth{
			Status:  "healthy",
			Latency: time.Since(dbStart).String(),
		}
	}

	// Redis is optional; report it only when configured.
	if h.cacheService != nil {
		redisStart := time.Now()
		if err := h.cacheService.HealthCheck(ctx); err != nil {
			services["redis"] = ServiceHealth{
				Status: "unhealthy",
				Error:  err.Error(),
			}
		} else {
			services["redis"] = ServiceHealth{
				Status:  "healthy",
				Latency: time.Since(redisStart).String(),
			}
		}
	}

	status := "ready"
	if services["database"].Status != "healthy" {
		status = "not_ready"
	}

	response := HealthResponse{
		Status:    status,
		Version:   "1.0.0",
		Timestamp: time.Now(),
		Services:  services,
	}

	if status != "ready" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response)
	}

	return c.JSON(response)
}

func (h *Handler) fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: getRequestID(c),
		Timestamp: time.Now(),
	})
}

func userID(c *fiber.Ctx) string {
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}

func getRequestID(c *fiber.Ctx) string {
	if id := c.Locals("requestID"); id != nil {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
