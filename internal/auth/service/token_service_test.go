package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandha2804/TMS/internal/auth/domain"
	autherror "github.com/nandha2804/TMS/internal/errors"
)

const testSecret = "test-secret-key-that-is-32-chars!"

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-123",
		Email: "test@example.com",
		Role:  "user",
	}
}

func TestTokenService_Generate_RoundTrip(t *testing.T) {
	ts := NewTokenService(testSecret, 15*time.Minute, 168*time.Hour)
	user := testUser()

	accessToken, refreshToken, err := ts.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	claims, err := ts.VerifyAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)

	refreshClaims, err := ts.VerifyRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshClaims.Subject)
	assert.Empty(t, refreshClaims.Email)
	assert.Empty(t, refreshClaims.Role)
}

func TestTokenService_VerifyAccessToken_RejectsRefreshToken(t *testing.T) {
	ts := NewTokenService(testSecret, 15*time.Minute, 168*time.Hour)

	// A refresh token carries no email/role claims, so it must not pass as
	// an access token even though the signature is valid.
	_, refreshToken, err := ts.Generate(testUser())
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	ts := NewTokenService(testSecret, 15*time.Minute, 168*time.Hour)
	other := NewTokenService("another-secret-key-of-32-chars!!!", 15*time.Minute, 168*time.Hour)

	accessToken, _, err := other.Generate(testUser())
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(accessToken)
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
}

func TestTokenService_Verify_RejectsOtherAlgorithms(t *testing.T) {
	ts := NewTokenService(testSecret, 15*time.Minute, 168*time.Hour)

	claims := JWTCustomClaims{
		Email: "test@example.com",
		Role:  "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	// Signed with the right secret but HS512: algorithm pinning must reject it.
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(tokenString)
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	ts := NewTokenService(testSecret, -time.Minute, -time.Minute)

	accessToken, refreshToken, err := ts.Generate(testUser())
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(accessToken)
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)

	_, err = ts.VerifyRefreshToken(refreshToken)
	assert.ErrorIs(t, err, autherror.ErrInvalidToken)
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	ts := NewTokenService(testSecret, 15*time.Minute, 168*time.Hour)

	_, err := ts.VerifyAccessToken("not-a-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, autherror.ErrInvalidToken))
}
