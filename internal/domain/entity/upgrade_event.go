package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpgradeEvent is the durable record of why an entitlement was granted. It is
// written in the same store transaction as the transaction and subscription it
// describes, and later relayed to subscribers.
type UpgradeEvent struct {
	ID               string          `json:"id"`
	TransactionID    string          `json:"transaction_id"`
	UserID           string          `json:"user_id"`
	TierID           TierID          `json:"tier_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentReference string          `json:"payment_reference"`
	VerifiedAt       time.Time       `json:"verified_at"`
	SubscriptionEnd  time.Time       `json:"subscription_end_date"`
	PublishedAt      *time.Time      `json:"published_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// UpgradeCompletion is everything one accepted verification writes, as a unit.
type UpgradeCompletion struct {
	TransactionID    string
	PaymentReference string
	VerifiedAt       time.Time
	Subscription     *Subscription
	Event            *UpgradeEvent
}
