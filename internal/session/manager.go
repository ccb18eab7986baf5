package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

const tokenBytes = 32

// Manager issues and resolves sessions on top of a Store. Sessions slide:
// Refresh extends one once less than half of its TTL remains.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) Issue(ctx context.Context, userID uint, email string, isAdmin bool) (*Session, error) {
	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	now := m.now().UTC()
	s := &Session{
		Token:     token,
		UserID:    userID,
		Email:     email,
		IsAdmin:   isAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

func (m *Manager) Lookup(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.IsExpired(m.now()) {
		_ = m.store.Delete(ctx, token)
		return nil, ErrNotFound
	}
	return s, nil
}

// Refresh extends s when it is past the middle of its lifetime and reports
// whether it did.
func (m *Manager) Refresh(ctx context.Context, s *Session) (bool, error) {
	now := m.now().UTC()
	if s.ExpiresAt.Sub(now) > m.ttl/2 {
		return false, nil
	}
	if err := m.store.Expire(ctx, s.Token, m.ttl); err != nil {
		return false, err
	}
	s.ExpiresAt = now.Add(m.ttl)
	return true, nil
}

func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
