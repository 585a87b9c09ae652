package dto

import (
	"time"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
)

// StartUpgradeRequest selects the tier to upgrade to
type StartUpgradeRequest struct {
	TierID string `json:"tier_id" validate:"required"`
}

// SubmitReferenceRequest carries the self-reported payment reference
type SubmitReferenceRequest struct {
	Reference string `json:"reference" validate:"max=128"`
}

// TierDTO is the API view of a catalog tier. Prices keep two decimals.
type TierDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MonthlyPrice string   `json:"monthly_price"`
	Currency     string   `json:"currency"`
	Features     []string `json:"features"`
}

func NewTierDTO(t entity.Tier) TierDTO {
	features := t.Features
	if features == nil {
		features = []string{}
	}
	return TierDTO{
		ID:           string(t.ID),
		Name:         t.Name,
		Description:  t.Description,
		MonthlyPrice: t.MonthlyPrice.StringFixed(2),
		Currency:     t.Currency,
		Features:     features,
	}
}

// AttemptDTO is the client-visible state of an upgrade attempt
type AttemptDTO struct {
	ID            string  `json:"attempt_id"`
	State         string  `json:"state"`
	Tier          TierDTO `json:"tier"`
	TransactionID string  `json:"transaction_id,omitempty"`
	PaymentURL    string  `json:"payment_url,omitempty"`
}

func NewAttemptDTO(a entity.Attempt) AttemptDTO {
	return AttemptDTO{
		ID:            a.ID,
		State:         string(a.State),
		Tier:          NewTierDTO(a.Tier),
		TransactionID: a.TransactionID,
		PaymentURL:    a.PaymentURL,
	}
}

// StartUpgradeResponse is returned once the pending transaction is recorded
type StartUpgradeResponse struct {
	Attempt     AttemptDTO            `json:"attempt"`
	Transaction PaymentTransactionDTO `json:"transaction"`
	PaymentURL  string                `json:"payment_url"`
}

// SubscriptionDTO is the API view of the user's current subscription
type SubscriptionDTO struct {
	SubscriptionType   string     `json:"subscription_type"`
	SubscriptionStatus string     `json:"subscription_status"`
	StartDate          *time.Time `json:"subscription_start_date,omitempty"`
	EndDate            *time.Time `json:"subscription_end_date,omitempty"`
	PaymentMethod      string     `json:"payment_method,omitempty"`
	PaymentReference   string     `json:"payment_reference,omitempty"`
	TransactionID      string     `json:"transaction_id,omitempty"`
}

// NewSubscriptionDTO converts a stored subscription. A nil subscription, or one with
// a tier outside the catalog, reads as the free tier.
func NewSubscriptionDTO(s *entity.Subscription) SubscriptionDTO {
	if s == nil || !s.Type.Valid() {
		return SubscriptionDTO{
			SubscriptionType:   string(entity.TierFree),
			SubscriptionStatus: string(entity.SubscriptionStatusActive),
		}
	}
	start, end := s.StartDate, s.EndDate
	return SubscriptionDTO{
		SubscriptionType:   string(s.Type),
		SubscriptionStatus: string(s.Status),
		StartDate:          &start,
		EndDate:            &end,
		PaymentMethod:      s.PaymentMethod,
		PaymentReference:   s.PaymentReference,
		TransactionID:      s.TransactionID,
	}
}

// SubmitReferenceResponse is returned once the upgrade is recorded
type SubmitReferenceResponse struct {
	Attempt      AttemptDTO      `json:"attempt"`
	Subscription SubscriptionDTO `json:"subscription"`
}

// PricingOptionDTO is one paid tier as presented to the current user
type PricingOptionDTO struct {
	Tier    TierDTO `json:"tier"`
	Current bool    `json:"current"`
	Enabled bool    `json:"enabled"`
	Label   string  `json:"label"`
}

// PricingOptionsResponse lists the paid tiers and the user's current tier
type PricingOptionsResponse struct {
	CurrentTier string             `json:"current_tier"`
	Options     []PricingOptionDTO `json:"options"`
}
