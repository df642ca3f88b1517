package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trademind/journal/internal/domain"
)

// Token issue/verify needs no database, so the pool stays nil here.
func newTokenOnlyService(secret string, ttl time.Duration) *AuthService {
	return NewAuthService(nil, secret, ttl, 4)
}

func TestTokenRoundtrip(t *testing.T) {
	auth := newTokenOnlyService("test-secret", time.Hour)

	token, err := auth.IssueToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := newTokenOnlyService("test-secret", time.Hour)

	for _, bad := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := auth.ParseToken(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", bad)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := newTokenOnlyService("secret-a", time.Hour)
	verifier := newTokenOnlyService("secret-b", time.Hour)

	token, err := issuer.IssueToken("user-123")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	auth := newTokenOnlyService("test-secret", -time.Minute)

	token, err := auth.IssueToken("user-123")
	require.NoError(t, err)

	_, err = auth.ParseToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
