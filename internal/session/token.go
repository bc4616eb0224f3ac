package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the canonical session cookie name.
const CookieName = "textforge_session"

// TokenCodec signs and verifies the session cookie value. The cookie carries
// only the session ID; the store remains the source of truth so logout revokes
// immediately regardless of token expiry.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec signing with HMAC-SHA256.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Encode wraps a session ID into a signed token.
func (c *TokenCodec) Encode(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns the session ID it carries.
func (c *TokenCodec) Decode(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing session token: %w", err)
	}
	if !token.Valid || claims.ID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.ID, nil
}
