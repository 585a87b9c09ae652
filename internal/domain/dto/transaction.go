package dto

import (
	"time"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
)

// PaymentTransactionDTO is the API view of a payment transaction.
type PaymentTransactionDTO struct {
	ID               string     `json:"id"`
	TierID           string     `json:"tier_id"`
	Amount           string     `json:"amount"`
	Currency         string     `json:"currency"`
	PaymentMethod    string     `json:"payment_method"`
	PaymentStatus    string     `json:"payment_status"`
	PaymentReference string     `json:"payment_reference,omitempty"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	FailureReason    string     `json:"failure_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NewPaymentTransactionDTO converts an entity for API responses. Amounts keep two decimals.
func NewPaymentTransactionDTO(t *entity.PaymentTransaction) PaymentTransactionDTO {
	return PaymentTransactionDTO{
		ID:               t.ID,
		TierID:           string(t.TierID),
		Amount:           t.Amount.StringFixed(2),
		Currency:         t.Currency,
		PaymentMethod:    t.PaymentMethod,
		PaymentStatus:    string(t.Status),
		PaymentReference: t.PaymentReference,
		VerifiedAt:       t.VerifiedAt,
		FailureReason:    t.FailureReason,
		CreatedAt:        t.CreatedAt,
	}
}

// TransactionListResponse represents the paginated transaction list response
type TransactionListResponse struct {
	Transactions []PaymentTransactionDTO `json:"transactions"`
	Pagination   PaginationInfo          `json:"pagination"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// TransactionFilters contains query filters for transaction retrieval
type TransactionFilters struct {
	UserID string
	Status *entity.PaymentStatus
	Limit  int
	Offset int
}

const (
	DefaultTransactionLimit = 20
	MaxTransactionLimit     = 100
)

// SetDefaults clamps limit and offset into their allowed ranges.
func (f *TransactionFilters) SetDefaults() {
	if f.Limit <= 0 {
		f.Limit = DefaultTransactionLimit
	} else if f.Limit > MaxTransactionLimit {
		f.Limit = MaxTransactionLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
