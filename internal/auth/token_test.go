// ABOUTME: Tests for JWT issue/verify and bcrypt password handling.
// ABOUTME: Covers expiry, wrong secret, missing claims, and hash round-trips.

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokensEmptySecret(t *testing.T) {
	_, err := NewTokens(nil, time.Hour)
	assert.Error(t, err)
}

func TestNewTokensDefaultTTL(t *testing.T) {
	tokens, err := NewTokens([]byte("secret"), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, tokens.ttl)
}

func TestIssueAndVerify(t *testing.T) {
	tokens, err := NewTokens([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	signed, err := tokens.Issue("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer, err := NewTokens([]byte("secret-a"), time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokens([]byte("secret-b"), time.Hour)
	require.NoError(t, err)

	signed, err := issuer.Issue("user-42")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	tokens, err := NewTokens([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	// Build an already-expired token with the same secret.
	claims := jwt.MapClaims{
		"sub": "user-42",
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyMissingSubject(t *testing.T) {
	tokens, err := NewTokens([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, ErrMissingClaim)
}

func TestVerifyGarbage(t *testing.T) {
	tokens, err := NewTokens([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	_, err = tokens.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	require.NoError(t, err)
	assert.NotEqual(t, "motdepasse123", hash)

	assert.True(t, CheckPassword(hash, "motdepasse123"))
	assert.False(t, CheckPassword(hash, "mauvais"))
}
