// Package session keeps login sessions behind a Store so a single instance can
// use process memory while a fleet shares Redis or the SQL database.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions by token. Get and Expire return ErrNotFound for
// unknown or expired tokens; Delete is idempotent.
type Store interface {
	Get(ctx context.Context, token string) (*Session, error)
	Set(ctx context.Context, s *Session) error
	Delete(ctx context.Context, token string) error
	Expire(ctx context.Context, token string, ttl time.Duration) error
}
