package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/dto"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/model"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTransactionRepository creates a gorm-backed payment transaction repository
func NewTransactionRepository(db *gorm.DB, logger *zap.Logger) repository.TransactionRepository {
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.PaymentTransaction) error {
	if err := r.db.WithContext(ctx).Create(transactionToModel(txn)).Error; err != nil {
		r.logger.Error("Failed to create payment transaction",
			zap.String("transaction_id", txn.ID),
			zap.String("user_id", txn.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to create payment transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*entity.PaymentTransaction, error) {
	var txn model.PaymentTransaction

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get payment transaction",
			zap.String("transaction_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment transaction: %w", err)
	}

	return transactionToEntity(&txn), nil
}

func (r *transactionRepository) filtered(ctx context.Context, filters dto.TransactionFilters) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.PaymentTransaction{}).
		Where("user_id = ?", filters.UserID)

	if filters.Status != nil && *filters.Status != "" {
		query = query.Where("payment_status = ?", model.PaymentStatus(*filters.Status))
	}
	return query
}

// List returns the user's transactions newest first
func (r *transactionRepository) List(ctx context.Context, filters dto.TransactionFilters) ([]*entity.PaymentTransaction, error) {
	var rows []model.PaymentTransaction

	err := r.filtered(ctx, filters).
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&rows).Error
	if err != nil {
		r.logger.Error("Failed to list payment transactions",
			zap.String("user_id", filters.UserID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list payment transactions: %w", err)
	}

	result := make([]*entity.PaymentTransaction, 0, len(rows))
	for i := range rows {
		result = append(result, transactionToEntity(&rows[i]))
	}
	return result, nil
}

func (r *transactionRepository) Count(ctx context.Context, filters dto.TransactionFilters) (int64, error) {
	var count int64
	if err := r.filtered(ctx, filters).Count(&count).Error; err != nil {
		r.logger.Error("Failed to count payment transactions",
			zap.String("user_id", filters.UserID),
			zap.Error(err))
		return 0, fmt.Errorf("failed to count payment transactions: %w", err)
	}
	return count, nil
}

func (r *transactionRepository) MarkFailed(ctx context.Context, id, reason string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.PaymentTransaction{}).
		Where("id = ? AND payment_status = ?", id, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentStatusFailed,
			"failure_reason": reason,
			"updated_at":     at,
		})
	if result.Error != nil {
		r.logger.Error("Failed to mark payment transaction failed",
			zap.String("transaction_id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark payment transaction failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrTransactionNotPending
	}
	return nil
}

// ExpirePending locks a batch of stale pending rows and moves them to expired.
// Rows locked by a concurrent completion are skipped.
func (r *transactionRepository) ExpirePending(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	var ids []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.PaymentTransaction{}).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("payment_status = ? AND created_at < ?", model.PaymentStatusPending, cutoff).
			Order("created_at").
			Limit(limit).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		return tx.Model(&model.PaymentTransaction{}).
			Where("id IN ? AND payment_status = ?", ids, model.PaymentStatusPending).
			Updates(map[string]interface{}{
				"payment_status": model.PaymentStatusExpired,
				"failure_reason": "payment reference was not submitted in time",
				"updated_at":     time.Now().UTC(),
			}).Error
	})
	if err != nil {
		r.logger.Error("Failed to expire pending transactions",
			zap.Time("cutoff", cutoff),
			zap.Error(err))
		return nil, fmt.Errorf("failed to expire pending transactions: %w", err)
	}

	return ids, nil
}
