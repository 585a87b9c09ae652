package repository

import (
	"context"
	"time"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
)

// UpgradeStore applies an accepted verification atomically and owns the outbox
// of upgrade events.
type UpgradeStore interface {
	// CompleteUpgrade marks the transaction completed, upserts the subscription and
	// records the event in one store transaction. Nothing is written when any step
	// fails. It returns ErrTransactionNotPending when the transaction is no longer pending.
	CompleteUpgrade(ctx context.Context, completion *entity.UpgradeCompletion) error
	ListUnpublishedEvents(ctx context.Context, limit int) ([]*entity.UpgradeEvent, error)
	MarkEventPublished(ctx context.Context, id string, at time.Time) error
}
