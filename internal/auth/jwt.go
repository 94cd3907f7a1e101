// Package auth issues and verifies the signed credential and enforces the
// three access policies consumed by the routes.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed credential validity.
const TokenTTL = 24 * time.Hour

type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// GenerateToken signs a credential asserting the identity and role claim.
func GenerateToken(secret []byte, username string, isAdmin bool) (string, error) {
	claims := &Claims{
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies a credential and returns the identity it asserts, or
// false for any failure (malformed, expired, wrong signature). Verification
// never produces an error: rejection is the guards' decision alone.
func ParseToken(secret []byte, tokenString string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
