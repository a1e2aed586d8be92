package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedVerifier memoizes successful verifications in Redis so every request
// does not round-trip to the provider. Tokens are hashed before use as keys.
type CachedVerifier struct {
	next   Verifier
	client *redis.Client
	ttl    time.Duration
}

// NewCachedVerifier wraps a verifier with a Redis cache.
func NewCachedVerifier(next Verifier, client *redis.Client, ttl time.Duration) *CachedVerifier {
	return &CachedVerifier{next: next, client: client, ttl: ttl}
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "pavilo_identity:" + hex.EncodeToString(sum[:])
}

// Verify checks the cache and falls through to the provider on a miss.
func (v *CachedVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	key := cacheKey(token)

	raw, err := v.client.Get(ctx, key).Result()
	if err == nil {
		var id Identity
		if err := json.Unmarshal([]byte(raw), &id); err == nil {
			return &id, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Cache trouble is not an auth failure; fall through to the provider.
		return v.next.Verify(ctx, token)
	}

	id, err := v.next.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(id); err == nil {
		_ = v.client.Set(ctx, key, data, v.ttl).Err()
	}
	return id, nil
}
