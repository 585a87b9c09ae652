package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/dto"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/provider"
)

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *entity.PaymentTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*entity.PaymentTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, filters dto.TransactionFilters) ([]*entity.PaymentTransaction, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PaymentTransaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context, filters dto.TransactionFilters) (int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) MarkFailed(ctx context.Context, id, reason string, at time.Time) error {
	args := m.Called(ctx, id, reason, at)
	return args.Error(0)
}

func (m *MockTransactionRepository) ExpirePending(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, subscription *entity.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

// MockUpgradeStore is a mock implementation of UpgradeStore
type MockUpgradeStore struct {
	mock.Mock
}

func (m *MockUpgradeStore) CompleteUpgrade(ctx context.Context, completion *entity.UpgradeCompletion) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

func (m *MockUpgradeStore) ListUnpublishedEvents(ctx context.Context, limit int) ([]*entity.UpgradeEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UpgradeEvent), args.Error(1)
}

func (m *MockUpgradeStore) MarkEventPublished(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockVerifier is a mock implementation of PaymentVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, txn *entity.PaymentTransaction, reference string) (provider.Verdict, error) {
	args := m.Called(ctx, txn, reference)
	return args.Get(0).(provider.Verdict), args.Error(1)
}

func (m *MockVerifier) Name() provider.VerifierType {
	return "mock"
}

// MockPublisher is a mock implementation of EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}
