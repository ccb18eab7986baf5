package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCookie = errors.New("invalid session cookie")

// CookieCodec turns a session into the cookie value. Without a key the value
// is the bare token; with one it is an HS256 JWT whose jti is the token.
type CookieCodec struct {
	key []byte
}

func NewCookieCodec(key []byte) *CookieCodec {
	return &CookieCodec{key: key}
}

func (c *CookieCodec) Signed() bool {
	return c != nil && len(c.key) > 0
}

func (c *CookieCodec) Encode(s *Session) (string, error) {
	if !c.Signed() {
		return s.Token, nil
	}
	claims := jwt.RegisteredClaims{
		ID:        s.Token,
		Subject:   fmt.Sprint(s.UserID),
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// Decode returns the session token carried by a cookie value.
func (c *CookieCodec) Decode(value string) (string, error) {
	if value == "" {
		return "", ErrInvalidCookie
	}
	if !c.Signed() {
		return value, nil
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil || claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}
