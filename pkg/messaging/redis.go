// Package messaging carries JSON messages over Redis pub/sub.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is one received pub/sub payload.
type Message struct {
	Channel    string
	Payload    []byte
	ReceivedAt time.Time
}

// Decode unmarshals the JSON payload into v.
func (m Message) Decode(v interface{}) error {
	return json.Unmarshal(m.Payload, v)
}

// RedisBus publishes and subscribes on a caller-owned Redis connection.
type RedisBus struct {
	client redis.UniversalClient
}

func NewRedisBus(client redis.UniversalClient) *RedisBus {
	return &RedisBus{client: client}
}

// Publish JSON-encodes message and sends it to channel. Delivery is fire and
// forget: subscribers that are not connected miss it.
func (b *RedisBus) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message for %s: %w", channel, err)
	}
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}

// Subscribe confirms the subscription and then streams messages until ctx is
// done, at which point the returned channel is closed.
func (b *RedisBus) Subscribe(ctx context.Context, channel string) (<-chan Message, error) {
	pubsub := b.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", channel, err)
	}

	out := make(chan Message)
	go func() {
		defer close(out)
		defer pubsub.Close()

		in := pubsub.Channel()
		for {
			var msg *redis.Message
			select {
			case <-ctx.Done():
				return
			case m, ok := <-in:
				if !ok {
					return
				}
				msg = m
			}

			select {
			case out <- Message{Channel: msg.Channel, Payload: []byte(msg.Payload), ReceivedAt: time.Now()}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
