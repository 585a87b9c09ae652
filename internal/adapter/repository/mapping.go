package repository

import (
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/model"
)

func transactionToModel(t *entity.PaymentTransaction) *model.PaymentTransaction {
	m := &model.PaymentTransaction{
		ID:               t.ID,
		UserID:           t.UserID,
		TierID:           string(t.TierID),
		Amount:           t.Amount,
		Currency:         t.Currency,
		PaymentMethod:    t.PaymentMethod,
		PaymentStatus:    model.PaymentStatus(t.Status),
		PaymentReference: t.PaymentReference,
		VerifiedAt:       t.VerifiedAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.FailureReason != "" {
		reason := t.FailureReason
		m.FailureReason = &reason
	}
	return m
}

func transactionToEntity(m *model.PaymentTransaction) *entity.PaymentTransaction {
	t := &entity.PaymentTransaction{
		ID:               m.ID,
		UserID:           m.UserID,
		TierID:           entity.TierID(m.TierID),
		Amount:           m.Amount,
		Currency:         m.Currency,
		PaymentMethod:    m.PaymentMethod,
		Status:           entity.PaymentStatus(m.PaymentStatus),
		PaymentReference: m.PaymentReference,
		VerifiedAt:       m.VerifiedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.FailureReason != nil {
		t.FailureReason = *m.FailureReason
	}
	return t
}

func subscriptionToModel(s *entity.Subscription) *model.Subscription {
	return &model.Subscription{
		UserID:           s.UserID,
		Email:            s.Email,
		DisplayName:      s.DisplayName,
		SubscriptionType: string(s.Type),
		Status:           string(s.Status),
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		PaymentMethod:    s.PaymentMethod,
		PaymentReference: s.PaymentReference,
		TransactionID:    s.TransactionID,
		UpdatedAt:        s.UpdatedAt,
	}
}

func subscriptionToEntity(m *model.Subscription) *entity.Subscription {
	return &entity.Subscription{
		UserID:           m.UserID,
		Email:            m.Email,
		DisplayName:      m.DisplayName,
		Type:             entity.TierID(m.SubscriptionType),
		Status:           entity.SubscriptionStatus(m.Status),
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		PaymentMethod:    m.PaymentMethod,
		PaymentReference: m.PaymentReference,
		TransactionID:    m.TransactionID,
		UpdatedAt:        m.UpdatedAt,
	}
}
