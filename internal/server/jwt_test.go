package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdellahzou/HiResume/internal/config"
)

func testJWTService(issuer string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing",
		ExpirationHours: 24,
		Issuer:          issuer,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := testJWTService("hiresume")
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "hiresume", claims.Issuer)
	assert.Equal(t, userID, claims.GetUserID())

	getter, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())
}

func TestJWTService_Expired(t *testing.T) {
	service := testJWTService("")
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken(uuid.New())
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_Rejects(t *testing.T) {
	service := testJWTService("hiresume")
	token, err := service.GenerateToken(uuid.New())
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := service.ValidateToken("")
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "a-completely-different-secret", ExpirationHours: 24, Issuer: "hiresume"})
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := testJWTService("someone-else")
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
	})

	t.Run("unsigned", func(t *testing.T) {
		claims := &Claims{UserID: uuid.New(), RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "hiresume",
		}}
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = service.ValidateToken(none)
		assert.Error(t, err)
	})
}
