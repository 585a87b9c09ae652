package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBus(t *testing.T) (*miniredis.Miniredis, *RedisBus) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewRedisBus(rdb)
}

func TestRedisBus_PublishSubscribe(t *testing.T) {
	_, bus := newBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := bus.Subscribe(ctx, "subscription.upgraded")
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, "subscription.upgraded", map[string]string{"user_id": "u1"}))

	select {
	case msg := <-msgs:
		assert.Equal(t, "subscription.upgraded", msg.Channel)
		var body map[string]string
		require.NoError(t, msg.Decode(&body))
		assert.Equal(t, "u1", body["user_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("message not received")
	}
}

func TestRedisBus_SubscriptionClosesWithContext(t *testing.T) {
	_, bus := newBus(t)
	ctx, cancel := context.WithCancel(context.Background())

	msgs, err := bus.Subscribe(ctx, "subscription.upgraded")
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-msgs:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription channel not closed")
	}
}

func TestRedisBus_PublishUnmarshalable(t *testing.T) {
	_, bus := newBus(t)
	assert.Error(t, bus.Publish(context.Background(), "c", make(chan int)))
}

func TestRedisBus_PublishServerDown(t *testing.T) {
	mr, bus := newBus(t)
	mr.Close()
	assert.Error(t, bus.Publish(context.Background(), "c", "hello"))
}
