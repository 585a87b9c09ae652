package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domainErrors "github.com/wekeepgrowing/juansite-billing/internal/domain/errors"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/dto"
	"github.com/wekeepgrowing/juansite-billing/internal/domain/repository"
)

// TransactionService lists a user's payment transactions
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	logger          *zap.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo repository.TransactionRepository, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// ListTransactions returns the user's transactions newest first with pagination
func (s *TransactionService) ListTransactions(
	ctx context.Context,
	userID string,
	filters dto.TransactionFilters,
) (*dto.TransactionListResponse, error) {
	filters.UserID = userID
	filters.SetDefaults()

	transactions, err := s.transactionRepo.List(ctx, filters)
	if err != nil {
		s.logger.Error("failed to list transactions",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, err)
	}

	totalCount, err := s.transactionRepo.Count(ctx, filters)
	if err != nil {
		s.logger.Error("failed to count transactions",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrStoreUnavailable, err)
	}

	transactionDTOs := make([]dto.PaymentTransactionDTO, len(transactions))
	for i, txn := range transactions {
		transactionDTOs[i] = dto.NewPaymentTransactionDTO(txn)
	}

	return &dto.TransactionListResponse{
		Transactions: transactionDTOs,
		Pagination: dto.PaginationInfo{
			Total:   totalCount,
			Limit:   filters.Limit,
			Offset:  filters.Offset,
			HasMore: int64(filters.Offset+filters.Limit) < totalCount,
		},
	}, nil
}
