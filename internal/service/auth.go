package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/trademind/journal/internal/domain"
	"github.com/trademind/journal/pkg/logger"
	"github.com/trademind/journal/pkg/metrics"
)

type AuthService struct {
	pool       *pgxpool.Pool
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(pool *pgxpool.Pool, secret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		pool:       pool,
		secret:     []byte(secret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates a user and returns a signed token for it. A taken email
// fails with ErrEmailTaken before any insert happens.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	if username == "" || email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username, email and password are required", domain.ErrValidation)
	}

	var existing string
	err := s.pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&existing)
	if err == nil {
		metrics.RecordAuthRequest("register", "conflict")
		return "", nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		metrics.RecordAuthRequest("register", "error")
		return "", nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.Email, string(hash), user.CreatedAt)
	if err != nil {
		metrics.RecordAuthRequest("register", "error")
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.RecordAuthRequest("register", "success")
	logger.Info("user registered", zap.String("user_id", user.ID))
	return token, user, nil
}

// Login verifies credentials and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var (
		user domain.User
		hash string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Username, &user.Email, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.RecordAuthRequest("login", "not_found")
		return "", nil, domain.ErrUserNotFound
	}
	if err != nil {
		metrics.RecordAuthRequest("login", "error")
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		metrics.RecordAuthRequest("login", "invalid_password")
		return "", nil, domain.ErrInvalidPassword
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.RecordAuthRequest("login", "success")
	return token, &user, nil
}

// IssueToken signs an HS256 bearer token with the user id as subject.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ParseToken returns the user id a bearer token asserts, or ErrInvalidToken
// for anything malformed, mis-signed or expired.
func (s *AuthService) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

// GetUser loads the client-visible user record.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, created_at FROM users WHERE id = $1`, userID).
		Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail resolves an owner for the CLI, which scopes its reports by
// email instead of a bearer token.
func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, created_at FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
