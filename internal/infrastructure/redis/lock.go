package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"go.uber.org/zap"
)

const lockKeyPrefix = "billing:inflight:"

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockGuard rejects a second operation on the same key across every replica
// sharing the Redis instance. The TTL bounds how long a crashed holder blocks a key.
type LockGuard struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewLockGuard(client *redis.Client, ttl time.Duration, logger *zap.Logger) *LockGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LockGuard{client: client, ttl: ttl, logger: logger}
}

// Acquire returns ErrOperationInProgress when key is already held.
func (g *LockGuard) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	redisKey := lockKeyPrefix + key

	ok, err := g.client.SetNX(ctx, redisKey, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, domainErrors.ErrOperationInProgress
	}

	release := func() {
		// the caller's context may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, g.client, []string{redisKey}, token).Err(); err != nil {
			g.logger.Warn("Failed to release in-flight lock", zap.String("key", key), zap.Error(err))
		}
	}
	return release, nil
}
