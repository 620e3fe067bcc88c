package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

// sessionTokens issues and validates the HS256 tokens that back admin
// sessions. The token is the only session mechanism; nothing is stored
// server-side.
type sessionTokens struct {
	secret []byte
	ttl    time.Duration
}

func newSessionTokens(secret string, ttl time.Duration) sessionTokens {
	return sessionTokens{secret: []byte(secret), ttl: ttl}
}

func (t sessionTokens) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		Issuer:    "portfolio-site-backend",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Validate returns the admin username carried by a valid token. Expired,
// malformed, or foreign-signed tokens all map to the same unauthorized
// error.
func (t sessionTokens) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errs.Unauthorized
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errs.Unauthorized
	}
	return claims.Subject, nil
}
