// Package service contains the token service and credential verification.
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"depot-rest-api/internal/errs"
)

// Claims is the signed payload carried by every token. Flag holds the staff
// role for user tokens and the client type for client tokens.
type Claims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Flag     string `json:"flag"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed identity claims.
type TokenService struct {
	secret []byte
	ttl    time.Duration

	now func() time.Time // overridable in tests
}

// NewTokenService constructs a token service with the given signing secret and
// token lifetime.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a new token for the given subject. Expiry is issued-at plus the
// configured lifetime.
func (s *TokenService) Issue(userID uint64, username, flag string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Flag:     flag,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and format and returns its claims.
// Expiry is deliberately NOT checked here: signature validity and temporal
// validity are distinct failure reasons, and the auth middleware owns the
// expiry comparison.
func (s *TokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}

// Expired reports whether the claims' expiry has passed.
func (s *TokenService) Expired(claims *Claims) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.Time.Before(s.now())
}
