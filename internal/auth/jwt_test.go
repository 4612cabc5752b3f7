package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airscore/airscore/internal/auth"
)

func newTestService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SigningKey: "test-signing-key"})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateToken("ops@airscore")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(auth.AdminTokenExpiry), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@airscore", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "airscore", claims.Issuer)
}

func TestJWTService_RejectsWrongKey(t *testing.T) {
	svc := newTestService()
	other := auth.NewJWTService(auth.JWTConfig{SigningKey: "different-key"})

	token, _, err := svc.GenerateToken("ops@airscore")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "airscore",
			Subject:   "ops@airscore",
			Audience:  jwt.ClaimStrings{"airscore-admin"},
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
		Role: "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(signed)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestJWTService_RejectsNonAdminRole(t *testing.T) {
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "airscore",
			Subject:   "reader@airscore",
			Audience:  jwt.ClaimStrings{"airscore-admin"},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "viewer",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = newTestService().ValidateToken(signed)
	assert.ErrorIs(t, err, auth.ErrNotAdmin)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := newTestService().ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
