package lib_test

import (
	"freshcatch_server/lib"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters-long"

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()
	userId := uuid.New()

	signed, claims, err := lib.GenerateToken(userId, "user@example.com", "customer", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.Equal(t, userId, claims.Sub)
	assert.NotEqual(t, uuid.Nil, claims.Jti)

	parsed, err := lib.ParseToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userId, parsed.Sub)
	assert.Equal(t, "user@example.com", parsed.Email)
	assert.Equal(t, "customer", parsed.Role)
	assert.Equal(t, claims.Jti, parsed.Jti)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()
	signed, _, err := lib.GenerateToken(uuid.New(), "user@example.com", "customer", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = lib.ParseToken(signed, "a-completely-different-secret-value")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()
	signed, _, err := lib.GenerateToken(uuid.New(), "user@example.com", "customer", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = lib.ParseToken(signed, testSecret)
	assert.Error(t, err)
}

func TestExtractClaims_FromCookie(t *testing.T) {
	t.Parallel()
	userId := uuid.New()
	signed, _, err := lib.GenerateToken(userId, "user@example.com", "admin", testSecret, time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: lib.AccessCookieName, Value: signed})

	claims, err := lib.ExtractClaims(r, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userId, claims.Sub)
	assert.Equal(t, "admin", claims.Role)
}

func TestExtractClaims_MissingCookie(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest("GET", "/auth/me", nil)

	_, err := lib.ExtractClaims(r, testSecret)
	assert.Error(t, err)
}
