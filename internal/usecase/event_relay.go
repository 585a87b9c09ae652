package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/repository"
	"github.com/wekeepgrowing/juansite-billing/internal/metrics"
	"go.uber.org/zap"
)

// EventPublisher delivers a JSON-encodable message to a channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// EventRelay forwards upgrade events from the store's outbox to subscribers. Delivery
// is at least once: an event published but not yet marked is sent again next round.
type EventRelay struct {
	store     repository.UpgradeStore
	publisher EventPublisher
	channel   string
	batchSize int
	logger    *zap.Logger
}

func NewEventRelay(store repository.UpgradeStore, publisher EventPublisher, channel string, batchSize int, logger *zap.Logger) *EventRelay {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &EventRelay{
		store:     store,
		publisher: publisher,
		channel:   channel,
		batchSize: batchSize,
		logger:    logger,
	}
}

// RelayOnce publishes one batch of unpublished events in order and returns how many
// were published. It stops at the first publish failure so ordering is kept.
func (r *EventRelay) RelayOnce(ctx context.Context) (int, error) {
	events, err := r.store.ListUnpublishedEvents(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list upgrade events: %w", err)
	}

	published := 0
	for _, event := range events {
		if err := r.publisher.Publish(ctx, r.channel, event); err != nil {
			return published, fmt.Errorf("publish upgrade event %s: %w", event.ID, err)
		}
		if err := r.store.MarkEventPublished(ctx, event.ID, time.Now().UTC()); err != nil {
			return published, fmt.Errorf("mark upgrade event %s published: %w", event.ID, err)
		}
		published++
		metrics.EventsPublished.Inc()
		r.logger.Debug("Upgrade event published",
			zap.String("event_id", event.ID),
			zap.String("transaction_id", event.TransactionID))
	}
	return published, nil
}

// Run relays every interval until ctx is cancelled.
func (r *EventRelay) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("Upgrade event relay started",
		zap.String("channel", r.channel),
		zap.Duration("interval", interval))

	for {
		if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
			r.logger.Warn("Upgrade event relay failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			r.logger.Info("Upgrade event relay stopped")
			return
		case <-ticker.C:
		}
	}
}
