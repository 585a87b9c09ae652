package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/dto"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/repository"
)

var (
	_ repository.TransactionRepository  = (*MemoryStore)(nil)
	_ repository.SubscriptionRepository = (*MemoryStore)(nil)
	_ repository.UpgradeStore           = (*MemoryStore)(nil)
)

// MemoryStore keeps transactions, subscriptions and upgrade events in process.
// It backs the memory database driver and tests. Records are copied on the way in
// and out so callers never share state with the store.
type MemoryStore struct {
	mu            sync.RWMutex
	transactions  map[string]*entity.PaymentTransaction
	subscriptions map[string]*entity.Subscription
	events        []*entity.UpgradeEvent
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions:  make(map[string]*entity.PaymentTransaction),
		subscriptions: make(map[string]*entity.Subscription),
	}
}

func (s *MemoryStore) Create(ctx context.Context, txn *entity.PaymentTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[txn.ID]; exists {
		return fmt.Errorf("payment transaction %s already exists", txn.ID)
	}
	copied := *txn
	s.transactions[txn.ID] = &copied
	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*entity.PaymentTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[id]
	if !ok {
		return nil, nil
	}
	copied := *txn
	return &copied, nil
}

func (s *MemoryStore) matching(filters dto.TransactionFilters) []*entity.PaymentTransaction {
	var result []*entity.PaymentTransaction
	for _, txn := range s.transactions {
		if txn.UserID != filters.UserID {
			continue
		}
		if filters.Status != nil && *filters.Status != "" && txn.Status != *filters.Status {
			continue
		}
		copied := *txn
		result = append(result, &copied)
	}
	return result
}

func (s *MemoryStore) List(ctx context.Context, filters dto.TransactionFilters) ([]*entity.PaymentTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := s.matching(filters)
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filters.Offset >= len(result) {
		return []*entity.PaymentTransaction{}, nil
	}
	result = result[filters.Offset:]
	if filters.Limit > 0 && filters.Limit < len(result) {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (s *MemoryStore) Count(ctx context.Context, filters dto.TransactionFilters) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.matching(filters))), nil
}

func (s *MemoryStore) MarkFailed(ctx context.Context, id, reason string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[id]
	if !ok || !txn.IsPending() {
		return domainErrors.ErrTransactionNotPending
	}
	txn.Status = entity.PaymentStatusFailed
	txn.FailureReason = reason
	txn.UpdatedAt = at
	return nil
}

func (s *MemoryStore) ExpirePending(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stale []*entity.PaymentTransaction
	for _, txn := range s.transactions {
		if txn.IsPending() && txn.CreatedAt.Before(cutoff) {
			stale = append(stale, txn)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i].CreatedAt.Before(stale[j].CreatedAt) })
	if limit > 0 && len(stale) > limit {
		stale = stale[:limit]
	}

	now := time.Now().UTC()
	ids := make([]string, 0, len(stale))
	for _, txn := range stale {
		txn.Status = entity.PaymentStatusExpired
		txn.FailureReason = "payment reference was not submitted in time"
		txn.UpdatedAt = now
		ids = append(ids, txn.ID)
	}
	return ids, nil
}

func (s *MemoryStore) GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscriptions[userID]
	if !ok {
		return nil, nil
	}
	copied := *sub
	return &copied, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, subscription *entity.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *subscription
	s.subscriptions[subscription.UserID] = &copied
	return nil
}

// CompleteUpgrade checks every precondition before mutating anything, so a
// rejected completion leaves the store untouched.
func (s *MemoryStore) CompleteUpgrade(ctx context.Context, completion *entity.UpgradeCompletion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[completion.TransactionID]
	if !ok || !txn.IsPending() {
		return domainErrors.ErrTransactionNotPending
	}

	verifiedAt := completion.VerifiedAt
	txn.Status = entity.PaymentStatusCompleted
	txn.PaymentReference = completion.PaymentReference
	txn.VerifiedAt = &verifiedAt
	txn.UpdatedAt = verifiedAt

	sub := *completion.Subscription
	s.subscriptions[sub.UserID] = &sub

	event := *completion.Event
	s.events = append(s.events, &event)
	return nil
}

func (s *MemoryStore) ListUnpublishedEvents(ctx context.Context, limit int) ([]*entity.UpgradeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*entity.UpgradeEvent
	for _, event := range s.events {
		if event.PublishedAt != nil {
			continue
		}
		copied := *event
		result = append(result, &copied)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *MemoryStore) MarkEventPublished(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range s.events {
		if event.ID == id {
			published := at
			event.PublishedAt = &published
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domainErrors.ErrUpgradeEventNotFound, id)
}
