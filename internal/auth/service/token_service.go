package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/nandha2804/TMS/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nandha2804/TMS/internal/auth/domain"
	autherror "github.com/nandha2804/TMS/internal/errors"
)

type TokenGenerator interface {
	Generate(user *domain.User) (accessToken, refreshToken string, err error)
	GenerateAccess(user *domain.User) (string, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error)
}

// TokenService signs and verifies access and refresh tokens with a single
// server-held secret. Only HS256 is accepted on verification.
type TokenService struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, accessExpiry, refreshExpiry time.Duration) *TokenService {
	return &TokenService{
		secret:             []byte(secret),
		accessTokenExpiry:  accessExpiry,
		refreshTokenExpiry: refreshExpiry,
	}
}

// Generate issues a token pair for the given user. The access token carries
// subject, email, and role; the refresh token carries the subject only.
func (ts *TokenService) Generate(user *domain.User) (string, string, error) {
	accessToken, err := ts.GenerateAccess(user)
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	refreshClaims := JWTCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.refreshTokenExpiry)),
		},
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(ts.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// GenerateAccess issues a standalone access token, used by the refresh flow
// which does not rotate the refresh token.
func (ts *TokenService) GenerateAccess(user *domain.User) (string, error) {
	now := time.Now()
	claims := JWTCustomClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessTokenExpiry)),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return accessToken, nil
}

// VerifyAccessToken parses and validates an access token. Subject, email, and
// role claims are all required.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	claims, err := ts.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" || claims.Email == "" || claims.Role == "" {
		return nil, fmt.Errorf("%w: missing required claims", autherror.ErrInvalidToken)
	}

	return claims, nil
}

// VerifyRefreshToken parses and validates a refresh token. Only the subject
// claim is required.
func (ts *TokenService) VerifyRefreshToken(tokenString string) (*JWTCustomClaims, error) {
	claims, err := ts.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", autherror.ErrInvalidToken)
	}

	return claims, nil
}

func (ts *TokenService) parse(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Pin the algorithm: anything other than HS256 is rejected outright.
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", autherror.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, autherror.ErrInvalidToken
	}

	return claims, nil
}
