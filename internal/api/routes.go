package api

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trademind/journal/internal/service"
)

func SetupRoutes(app *fiber.App, handler *Handler, auth *service.AuthService) {
	// Global middlewares
	app.Use(RequestID())
	app.Use(ErrorHandler())

	// Health checks (no rate limiting)
	app.Get("/health", handler.HealthCheck)
	app.Get("/ready", handler.ReadinessCheck)

	// Prometheus metrics endpoint (no rate limiting)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation (no rate limiting)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	api.Use(RateLimiter())
	api.Use(PrometheusMiddleware())

	// Auth routes (the only unauthenticated API surface)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", handler.Register)
	authGroup.Post("/login", handler.Login)

	// Trade routes, bearer-scoped to the caller
	trades := api.Group("/trades")
	trades.Use(BearerAuth(auth))
	// /stats must be registered before /:id
	trades.Get("/stats", handler.GetStats)
	trades.Get("/", handler.ListTrades)
	trades.Post("/", handler.CreateTrade)
	trades.Put("/:id", handler.UpdateTrade)
	trades.Delete("/:id", handler.DeleteTrade)
	trades.Post("/:id/analyze", handler.AnalyzeTrade)
	trades.Delete("/:id/analysis", handler.ClearAnalysis)
}
