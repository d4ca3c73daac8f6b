package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCookie is returned when a cookie value fails signature or expiry checks.
var ErrInvalidCookie = errors.New("invalid session cookie")

// CookieCodec signs session ids for the browser cookie. The signed value
// carries only the id and its expiry; identity stays server-side.
type CookieCodec struct {
	secret []byte
}

func NewCookieCodec(secret string) (*CookieCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	return &CookieCodec{secret: []byte(secret)}, nil
}

func (c *CookieCodec) Encode(sess *Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return value, nil
}

// Decode verifies value and returns the session id it carries.
func (c *CookieCodec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("%w: missing session id", ErrInvalidCookie)
	}
	return claims.ID, nil
}
