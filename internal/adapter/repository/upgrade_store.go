package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/model"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type upgradeStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUpgradeStore creates a gorm-backed upgrade store
func NewUpgradeStore(db *gorm.DB, logger *zap.Logger) repository.UpgradeStore {
	return &upgradeStore{
		db:     db,
		logger: logger,
	}
}

// CompleteUpgrade uses a database transaction so the completed payment, the
// subscription and the outbox event are committed together or not at all.
func (s *upgradeStore) CompleteUpgrade(ctx context.Context, completion *entity.UpgradeCompletion) error {
	event, err := eventToModel(completion.Event)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PaymentTransaction{}).
			Where("id = ? AND payment_status = ?", completion.TransactionID, model.PaymentStatusPending).
			Updates(map[string]interface{}{
				"payment_status":    model.PaymentStatusCompleted,
				"payment_reference": completion.PaymentReference,
				"verified_at":       completion.VerifiedAt,
				"updated_at":        completion.VerifiedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to complete payment transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domainErrors.ErrTransactionNotPending
		}

		if err := upsertSubscription(tx, completion.Subscription); err != nil {
			return fmt.Errorf("failed to upsert subscription: %w", err)
		}

		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to record upgrade event: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to complete upgrade",
			zap.String("transaction_id", completion.TransactionID),
			zap.String("user_id", completion.Subscription.UserID),
			zap.Error(err))
		return err
	}

	return nil
}

func (s *upgradeStore) ListUnpublishedEvents(ctx context.Context, limit int) ([]*entity.UpgradeEvent, error) {
	var rows []model.UpgradeEvent

	err := s.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		s.logger.Error("Failed to list unpublished upgrade events", zap.Error(err))
		return nil, fmt.Errorf("failed to list upgrade events: %w", err)
	}

	events := make([]*entity.UpgradeEvent, 0, len(rows))
	for i := range rows {
		event, err := eventToEntity(&rows[i])
		if err != nil {
			s.logger.Warn("Skipping undecodable upgrade event",
				zap.String("event_id", rows[i].ID),
				zap.Error(err))
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (s *upgradeStore) MarkEventPublished(ctx context.Context, id string, at time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&model.UpgradeEvent{}).
		Where("id = ?", id).
		Update("published_at", at)
	if result.Error != nil {
		s.logger.Error("Failed to mark upgrade event published",
			zap.String("event_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark upgrade event published: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domainErrors.ErrUpgradeEventNotFound, id)
	}
	return nil
}

func eventToModel(e *entity.UpgradeEvent) (*model.UpgradeEvent, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode upgrade event: %w", err)
	}
	return &model.UpgradeEvent{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		UserID:        e.UserID,
		EventType:     model.EventTypeSubscriptionUpgraded,
		Payload:       datatypes.JSON(payload),
		PublishedAt:   e.PublishedAt,
		CreatedAt:     e.CreatedAt,
	}, nil
}

func eventToEntity(m *model.UpgradeEvent) (*entity.UpgradeEvent, error) {
	var e entity.UpgradeEvent
	if err := json.Unmarshal(m.Payload, &e); err != nil {
		return nil, err
	}
	e.ID = m.ID
	e.PublishedAt = m.PublishedAt
	return &e, nil
}
