package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokens_Issue(t *testing.T) {
	secret := "test-secret"
	tokens := NewJWTTokens(secret)

	token, err := tokens.Issue("adm-123", "admin@example.com", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "adm-123", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestJWTTokens_Verify_roundtrip(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	token, err := tokens.Issue("adm-123", "admin@example.com", time.Hour)
	require.NoError(t, err)

	adminID, email, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "adm-123", adminID)
	assert.Equal(t, "admin@example.com", email)
}

func TestJWTTokens_Verify_expired(t *testing.T) {
	tokens := NewJWTTokens("test-secret")

	token, err := tokens.Issue("adm-123", "admin@example.com", -time.Minute)
	require.NoError(t, err)

	_, _, err = tokens.Verify(token)
	assert.Error(t, err)
}

func TestJWTTokens_Verify_wrong_secret(t *testing.T) {
	token, err := NewJWTTokens("secret-a").Issue("adm-123", "admin@example.com", time.Hour)
	require.NoError(t, err)

	_, _, err = NewJWTTokens("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestJWTTokens_Verify_garbage(t *testing.T) {
	_, _, err := NewJWTTokens("test-secret").Verify("not.a.jwt")
	assert.Error(t, err)
}

func TestJWTTokens_Verify_rejects_unsigned(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "adm-123"},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = NewJWTTokens("test-secret").Verify(token)
	assert.Error(t, err)
}
