package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/trademind/journal/internal/api"
	"github.com/trademind/journal/internal/config"
	"github.com/trademind/journal/internal/service"
	"github.com/trademind/journal/internal/storage/cache"
	"github.com/trademind/journal/internal/storage/postgres"
	pkglogger "github.com/trademind/journal/pkg/logger"
)

// @title Trade Journal API
// @version 1.0
// @description Personal trading journal: trade log, performance statistics and AI critiques

// @host localhost:8000
// @BasePath /api
// @schemes http https
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	if err := pkglogger.Init(cfg.LogLevel, cfg.Environment == "development"); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer pkglogger.Close()

	db, err := connectPostgres(cfg)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	cacheService := connectRedis(cfg)
	if cacheService != nil {
		defer cacheService.Close()
	}

	// Services
	authService := service.NewAuthService(db.Pool(), cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	tradeService := service.NewTradeService(db.Pool())
	statsService := service.NewStatsService(tradeService, cacheService)
	analysisService := service.NewAnalysisService(
		cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITimeout, tradeService, statsService)

	// Handler
	handler := api.NewHandler(
		db,
		cacheService,
		authService,
		tradeService,
		statsService,
		analysisService,
	)

	// Fiber app
	app := fiber.New(fiber.Config{
		Prefork:               false,
		ServerHeader:          "Trade-Journal",
		DisableStartupMessage: false,
		AppName:               "Trade Journal v1.0.0",
		ReadTimeout:           cfg.APIReadTimeout,
		WriteTimeout:          cfg.APIWriteTimeout,
		IdleTimeout:           120 * time.Second,
		ReadBufferSize:        8192,
		WriteBufferSize:       8192,
		ProxyHeader:           "X-Forwarded-For",
		BodyLimit:             cfg.APIBodyLimit,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Setup routes
	api.SetupRoutes(app, handler, authService)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("Starting server on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatal("Server error:", err)
	}
}

func connectPostgres(cfg *config.Config) (*postgres.DB, error) {
	db, err := postgres.NewDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("Connected to PostgreSQL")
	return db, nil
}

func connectRedis(cfg *config.Config) *cache.RedisCache {
	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.Printf("Redis unavailable: %v (continuing without cache)", err)
		return nil
	}

	log.Println("Connected to Redis")
	return redisCache
}
