package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trademind/journal/internal/service"
)

func protectedApp(t *testing.T, auth *service.AuthService) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(RequestID())
	app.Get("/protected", BearerAuth(auth), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": c.Locals("userID")})
	})
	return app
}

func TestBearerAuthMissingToken(t *testing.T) {
	auth := service.NewAuthService(nil, "test-secret", time.Hour, 4)
	app := protectedApp(t, auth)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Access denied. No token provided.", body.Error)
}

func TestBearerAuthInvalidToken(t *testing.T) {
	auth := service.NewAuthService(nil, "test-secret", time.Hour, 4)
	app := protectedApp(t, auth)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid token", body.Error)
}

func TestBearerAuthForeignSignature(t *testing.T) {
	issuer := service.NewAuthService(nil, "other-secret", time.Hour, 4)
	auth := service.NewAuthService(nil, "test-secret", time.Hour, 4)
	app := protectedApp(t, auth)

	token, err := issuer.IssueToken("user-123")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBearerAuthValidToken(t *testing.T) {
	auth := service.NewAuthService(nil, "test-secret", time.Hour, 4)
	app := protectedApp(t, auth)

	token, err := auth.IssueToken("user-123")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"user-123"}`, string(raw))
}

func TestRequestIDGenerated(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRequestIDPreserved(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", resp.Header.Get("X-Request-ID"))
}
