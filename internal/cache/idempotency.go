package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	attemptKeyPrefix = "attempt:"
	attemptKeyTTL    = 24 * time.Hour
)

// IdempotencyGuard is a redis SetNX fast path for duplicate checkout attempts.
// It is advisory: the unique index on purchases.idempotency_key stays
// authoritative, so the service runs fine with a nil guard.
type IdempotencyGuard struct {
	client *redis.Client
}

func NewIdempotencyGuard(client *redis.Client) *IdempotencyGuard {
	return &IdempotencyGuard{client: client}
}

// Begin claims the attempt key. Returns false when the key was already claimed.
func (g *IdempotencyGuard) Begin(ctx context.Context, userID, key string) (bool, error) {
	return g.client.SetNX(ctx, attemptKeyPrefix+userID+":"+key, 1, attemptKeyTTL).Result()
}

// Release frees the key so the same attempt can be retried. Only called for
// failures that happen before the attempt is persisted.
func (g *IdempotencyGuard) Release(ctx context.Context, userID, key string) error {
	return g.client.Del(ctx, attemptKeyPrefix+userID+":"+key).Err()
}
