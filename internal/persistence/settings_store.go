package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSettingsStore keeps the shared settings record in Redis so every
// process instance observes the same toggles.
type RedisSettingsStore struct {
	client *redis.Client
}

// NewRedisSettingsStore wraps the connected client.
func NewRedisSettingsStore(r *Redis) *RedisSettingsStore {
	if r == nil {
		return &RedisSettingsStore{}
	}
	return &RedisSettingsStore{client: r.Client}
}

// Get returns the stored value, reporting ok=false when the key is absent.
func (s *RedisSettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.client == nil {
		return "", false, ErrNotConfigured
	}
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

// Set stores the value without expiry.
func (s *RedisSettingsStore) Set(ctx context.Context, key, value string) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	return s.client.Set(ctx, key, value, 0).Err()
}
