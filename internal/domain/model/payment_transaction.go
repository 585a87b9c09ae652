package model

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is stored as the payment_status enum.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
)

// Scan implements sql.Scanner interface
func (s *PaymentStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(v)
	default:
		*s = PaymentStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// PaymentTransaction represents one upgrade attempt
type PaymentTransaction struct {
	ID               string          `gorm:"primaryKey;size:64" json:"id"`
	UserID           string          `gorm:"not null;size:128;index:idx_payment_transactions_user_created,priority:1" json:"user_id"`
	TierID           string          `gorm:"not null;size:32" json:"tier_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency         string          `gorm:"size:3;not null" json:"currency"`
	PaymentMethod    string          `gorm:"size:50;not null" json:"payment_method"`
	PaymentStatus    PaymentStatus   `gorm:"type:payment_status;not null;index" json:"payment_status"`
	PaymentReference string          `gorm:"size:255" json:"payment_reference"`
	VerifiedAt       *time.Time      `json:"verified_at,omitempty"`
	FailureReason    *string         `json:"failure_reason,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;index:idx_payment_transactions_user_created,priority:2" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
