package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentTransaction records one upgrade attempt, whether or not it is ever completed.
type PaymentTransaction struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	TierID           TierID          `json:"tier_id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	PaymentMethod    string          `json:"payment_method"`
	Status           PaymentStatus   `json:"payment_status"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	VerifiedAt       *time.Time      `json:"verified_at,omitempty"`
	FailureReason    string          `json:"failure_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
)

// Terminal reports whether no further transition is possible from s.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed || s == PaymentStatusExpired
}

// NewTransactionID returns a fresh random transaction identifier.
func NewTransactionID() string {
	return "txn_" + uuid.NewString()
}

func (t *PaymentTransaction) IsPending() bool {
	return t.Status == PaymentStatusPending
}
