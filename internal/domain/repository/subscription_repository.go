package repository

import (
	"context"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
)

type SubscriptionRepository interface {
	// GetByUserID returns nil, nil when the user never upgraded.
	GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error)
	Upsert(ctx context.Context, subscription *entity.Subscription) error
}
