package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis persists collections as plain string values in Redis.
type Redis struct {
	client *redis.Client
}

// NewRedis verifies connectivity and returns a Redis-backed store.
func NewRedis(ctx context.Context, client *redis.Client) (*Redis, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("store: redis ping: %w", err)
	}
	return &Redis{client: client}, nil
}

// Load returns the value stored under key, or ErrAbsent.
func (s *Redis) Load(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrAbsent
	}
	if err != nil {
		return "", fmt.Errorf("store: load %s: %w", key, err)
	}
	return val, nil
}

// Save replaces the value under key. Values do not expire.
func (s *Redis) Save(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("store: save %s: %w", key, err)
	}
	return nil
}
