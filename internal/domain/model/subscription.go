package model

import (
	"time"
)

// Subscription is the current entitlement of one user; the user id is the key.
type Subscription struct {
	UserID           string    `gorm:"primaryKey;size:128" json:"user_id"`
	Email            string    `gorm:"size:255" json:"email"`
	DisplayName      string    `gorm:"size:255" json:"display_name"`
	SubscriptionType string    `gorm:"size:32;not null" json:"subscription_type"`
	Status           string    `gorm:"size:20;not null" json:"subscription_status"`
	StartDate        time.Time `gorm:"column:subscription_start_date;not null" json:"subscription_start_date"`
	EndDate          time.Time `gorm:"column:subscription_end_date;not null" json:"subscription_end_date"`
	PaymentMethod    string    `gorm:"size:50" json:"payment_method"`
	PaymentReference string    `gorm:"size:255" json:"payment_reference"`
	TransactionID    string    `gorm:"size:64;index" json:"transaction_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}
