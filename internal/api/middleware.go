package api

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trademind/journal/internal/service"
)

var (
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_duration_seconds",
		Help: "Duration of HTTP requests.",
	}, []string{"method", "route", "status_code"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "route", "status_code"})
)

func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := c.Response().StatusCode()

		httpDuration.WithLabelValues(
			c.Method(),
			c.Route().Path,
			fmt.Sprintf("%d", status),
		).Observe(duration)

		httpRequests.WithLabelValues(
			c.Method(),
			c.Route().Path,
			fmt.Sprintf("%d", status),
		).Inc()

		return err
	}
}

func RateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               100,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		},
	})
}

// BearerAuth asserts the caller's identity from the Authorization header
// and stores the user id in Locals. A missing token is 401, a bad one 400,
// matching the contract the frontend was built against.
func BearerAuth(auth *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:     "Access denied. No token provided.",
				Code:      fiber.StatusUnauthorized,
				RequestID: getRequestID(c),
				Timestamp: time.Now(),
			})
		}

		userID, err := auth.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:     "Invalid token",
				Code:      fiber.StatusBadRequest,
				RequestID: getRequestID(c),
				Timestamp: time.Now(),
			})
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

func ErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if err != nil {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"error": message,
				"code":  code,
			})
		}

		return nil
	}
}

func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}

		c.Set("X-Request-ID", requestID)
		c.Locals("requestID", requestID)

		return c.Next()
	}
}

func generateRequestID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), randomString(8))
}

func randomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
