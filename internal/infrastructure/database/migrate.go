package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/model"
)

// Migrate creates the billing tables, enum types and partial indexes
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createCustomTypes(db); err != nil {
		logger.Error("Failed to create custom types", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.PaymentTransaction{},
		&model.Subscription{},
		&model.UpgradeEvent{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomTypes creates enum types AutoMigrate refers to but cannot create
func createCustomTypes(db *gorm.DB) error {
	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_status')`).Scan(&exists).Error; err != nil {
		return err
	}
	if !exists {
		if err := db.Exec(`CREATE TYPE payment_status AS ENUM ('pending', 'completed', 'failed', 'expired')`).Error; err != nil {
			return err
		}
		return nil
	}

	// older databases only know pending and completed
	for _, value := range []string{"failed", "expired"} {
		if err := db.Exec(`ALTER TYPE payment_status ADD VALUE IF NOT EXISTS '` + value + `'`).Error; err != nil {
			return err
		}
	}
	return nil
}

// createCustomIndexes creates partial indexes GORM tags cannot express
func createCustomIndexes(db *gorm.DB) error {
	// expiry sweeper scans
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_payment_transactions_pending ON payment_transactions (created_at) WHERE payment_status = 'pending'`).Error; err != nil {
		return err
	}

	// event relay scans
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_upgrade_events_unpublished ON upgrade_events (created_at) WHERE published_at IS NULL`).Error; err != nil {
		return err
	}

	return nil
}
