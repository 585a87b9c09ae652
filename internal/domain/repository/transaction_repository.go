package repository

import (
	"context"
	"time"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/dto"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/entity"
)

// TransactionRepository stores payment transactions. Lookups return nil, nil when
// the record does not exist.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.PaymentTransaction) error
	GetByID(ctx context.Context, id string) (*entity.PaymentTransaction, error)
	List(ctx context.Context, filters dto.TransactionFilters) ([]*entity.PaymentTransaction, error)
	Count(ctx context.Context, filters dto.TransactionFilters) (int64, error)
	// MarkFailed moves a pending transaction to failed. It returns
	// ErrTransactionNotPending when the transaction is not pending.
	MarkFailed(ctx context.Context, id, reason string, at time.Time) error
	// ExpirePending moves up to limit pending transactions created before cutoff
	// to expired and returns their ids.
	ExpirePending(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
}
