package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/juansite-billing/internal/config"
	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestLockGuard_RejectsConcurrentHolder(t *testing.T) {
	_, client := newTestRedis(t)
	guard := NewLockGuard(client, time.Minute, zap.NewNop())
	ctx := context.Background()

	release, err := guard.Acquire(ctx, "txn_1")
	require.NoError(t, err)

	_, err = guard.Acquire(ctx, "txn_1")
	assert.ErrorIs(t, err, domainErrors.ErrOperationInProgress)

	other, err := guard.Acquire(ctx, "txn_2")
	require.NoError(t, err)
	other()

	release()
	again, err := guard.Acquire(ctx, "txn_1")
	require.NoError(t, err)
	again()
}

func TestLockGuard_ExpiresAfterTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	guard := NewLockGuard(client, time.Second, zap.NewNop())
	ctx := context.Background()

	stale, err := guard.Acquire(ctx, "txn_1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	release, err := guard.Acquire(ctx, "txn_1")
	require.NoError(t, err)

	// the stale holder must not delete the new holder's lock
	stale()
	assert.True(t, mr.Exists(lockKeyPrefix+"txn_1"))
	release()
	assert.False(t, mr.Exists(lockKeyPrefix+"txn_1"))
}

func TestLockGuard_StoreUnavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	guard := NewLockGuard(client, time.Minute, zap.NewNop())
	mr.Close()

	_, err := guard.Acquire(context.Background(), "txn_1")
	assert.ErrorIs(t, err, domainErrors.ErrStoreUnavailable)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := NewClient(config.RedisConfig{Addr: addr}, zap.NewNop())
	require.NoError(t, err)
	_ = client.Close()

	mr.Close()
	_, err = NewClient(config.RedisConfig{Addr: addr}, zap.NewNop())
	assert.Error(t, err)
}
