// internal/pkg/auth/token_test.go
package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return signed
}

func TestInspector_ReadsClaimsWithoutSecret(t *testing.T) {
	tokenString := signedToken(t, &Claims{
		UserID: "u-1",
		Email:  "jordan@example.com",
		Role:   "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := NewInspector().Inspect(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "jordan@example.com", claims.Email)
	assert.False(t, claims.IsAdmin())
	assert.False(t, claims.IsExpired())
}

func TestInspector_ExpiredToken(t *testing.T) {
	tokenString := signedToken(t, &Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	claims, err := NewInspector().Inspect(tokenString)
	require.NoError(t, err)
	assert.True(t, claims.IsExpired())
}

func TestInspector_AdminRole(t *testing.T) {
	tokenString := signedToken(t, &Claims{UserID: "u-2", Role: "admin"})

	claims, err := NewInspector().Inspect(tokenString)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestInspector_Garbage(t *testing.T) {
	_, err := NewInspector().Inspect("not-a-token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Empty(t, ExtractTokenFromHeader("abc"))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Bearer "))
}
