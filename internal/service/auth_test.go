package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/rat-api/internal/domain"
)

func TestAuthService_IssueAndValidate(t *testing.T) {
	auth := NewAuthService("secret", time.Hour)

	token, err := auth.IssueToken("abc123")
	require.NoError(t, err)

	claim, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claim)
}

func TestAuthService_InvalidTokens(t *testing.T) {
	auth := NewAuthService("secret", time.Hour)

	otherSecret, err := NewAuthService("other", time.Hour).IssueToken("abc123")
	require.NoError(t, err)

	expired, err := NewAuthService("secret", -time.Minute).IssueToken("abc123")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "abc123"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"other secret": otherSecret,
		"expired":      expired,
		"alg none":     unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.ValidateToken(token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestAuthService_EmptySubject(t *testing.T) {
	auth := NewAuthService("secret", time.Hour)

	token, err := auth.IssueToken("")
	require.NoError(t, err)

	claim, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Empty(t, claim)
}
