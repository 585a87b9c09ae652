package model

import (
	"time"

	"gorm.io/datatypes"
)

// UpgradeEvent is an outbox row written together with a completed upgrade.
type UpgradeEvent struct {
	ID            string         `gorm:"primaryKey;size:64" json:"id"`
	TransactionID string         `gorm:"unique;not null;size:64" json:"transaction_id"`
	UserID        string         `gorm:"not null;size:128;index" json:"user_id"`
	EventType     string         `gorm:"not null;size:100" json:"event_type"`
	Payload       datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	PublishedAt   *time.Time     `json:"published_at,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
}

const EventTypeSubscriptionUpgraded = "subscription.upgraded"

// TableName specifies the table name for GORM
func (UpgradeEvent) TableName() string {
	return "upgrade_events"
}
