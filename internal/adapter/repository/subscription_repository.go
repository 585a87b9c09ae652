package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/model"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type subscriptionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger *zap.Logger) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *subscriptionRepository) GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error) {
	var sub model.Subscription

	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get subscription by user ID",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return subscriptionToEntity(&sub), nil
}

func (r *subscriptionRepository) Upsert(ctx context.Context, subscription *entity.Subscription) error {
	if err := upsertSubscription(r.db.WithContext(ctx), subscription); err != nil {
		r.logger.Error("Failed to upsert subscription",
			zap.String("user_id", subscription.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

// upsertSubscription overwrites every column except created_at when the user already has a row.
func upsertSubscription(db *gorm.DB, subscription *entity.Subscription) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email",
			"display_name",
			"subscription_type",
			"status",
			"subscription_start_date",
			"subscription_end_date",
			"payment_method",
			"payment_reference",
			"transaction_id",
			"updated_at",
		}),
	}).Create(subscriptionToModel(subscription)).Error
}
