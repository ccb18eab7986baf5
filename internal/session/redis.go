package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (r *RedisStore) key(token string) string {
	return fmt.Sprintf("%s:%s", r.prefix, token)
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := r.client.Get(ctx, r.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Set(ctx context.Context, s *Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// Expire rewrites the stored expiry and the key TTL. SET XX keeps a session
// deleted concurrently from being recreated.
func (r *RedisStore) Expire(ctx context.Context, token string, ttl time.Duration) error {
	s, err := r.Get(ctx, token)
	if err != nil {
		return err
	}
	s.ExpiresAt = r.now().Add(ttl)

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := r.client.SetXX(ctx, r.key(token), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis expire session: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
