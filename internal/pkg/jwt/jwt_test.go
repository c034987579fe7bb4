package jwt

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrstack/hrms-backend-go/internal/domain/user"
)

const testSecret = "test-secret-key-for-jwt"

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	employeeID := "emp-1234"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "jane@example.com", &employeeID, user.RoleHR)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "jane@example.com", claims["email"])
	assert.Equal(t, "emp-1234", claims["employee_id"])
	assert.Equal(t, "hr", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestAccessTokenWithoutEmployee(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateAccessToken("user-2", "admin@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims["employee_id"])
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateRefreshToken("user-3")
	require.NoError(t, err)

	userID, err := svc.ParseRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-3", userID)
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	accessToken, _, err := svc.GenerateAccessToken("user-4", "x@example.com", nil, user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestParseRefreshTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	_, err := svc.ParseRefreshToken("not-a-token")
	assert.Error(t, err)
}
