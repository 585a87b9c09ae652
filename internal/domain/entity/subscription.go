package entity

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive SubscriptionStatus = "active"
)

// Subscription is the current entitlement of one identity. It is keyed by user
// and overwritten by every accepted upgrade.
type Subscription struct {
	UserID           string             `json:"user_id"`
	Email            string             `json:"email,omitempty"`
	DisplayName      string             `json:"display_name,omitempty"`
	Type             TierID             `json:"subscription_type"`
	Status           SubscriptionStatus `json:"subscription_status"`
	StartDate        time.Time          `json:"subscription_start_date"`
	EndDate          time.Time          `json:"subscription_end_date"`
	PaymentMethod    string             `json:"payment_method"`
	PaymentReference string             `json:"payment_reference"`
	TransactionID    string             `json:"transaction_id"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
