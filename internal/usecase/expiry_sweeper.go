package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wekeepgrowing/juansite-billing/internal/domain/repository"
	"github.com/wekeepgrowing/juansite-billing/internal/metrics"
	"go.uber.org/zap"
)

// ExpirySweeper moves pending transactions that never received a reference to expired.
type ExpirySweeper struct {
	transactions repository.TransactionRepository
	pendingTTL   time.Duration
	batchSize    int
	logger       *zap.Logger
	now          func() time.Time
}

func NewExpirySweeper(transactions repository.TransactionRepository, pendingTTL time.Duration, batchSize int, logger *zap.Logger) *ExpirySweeper {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &ExpirySweeper{
		transactions: transactions,
		pendingTTL:   pendingTTL,
		batchSize:    batchSize,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// SweepOnce expires every pending transaction older than the TTL and returns how many it expired.
// A non-positive TTL expires nothing.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int, error) {
	if s.pendingTTL <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.pendingTTL)
	total := 0

	for {
		ids, err := s.transactions.ExpirePending(ctx, cutoff, s.batchSize)
		if err != nil {
			return total, fmt.Errorf("expire pending transactions: %w", err)
		}
		total += len(ids)
		metrics.TransactionsExpired.Add(float64(len(ids)))
		for _, id := range ids {
			s.logger.Info("Pending transaction expired", zap.String("transaction_id", id))
		}
		if len(ids) < s.batchSize {
			return total, nil
		}
		if err := ctx.Err(); err != nil {
			return total, err
		}
	}
}

// Run sweeps every interval until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Expiry sweeper started",
		zap.Duration("interval", interval),
		zap.Duration("pending_ttl", s.pendingTTL))

	for {
		if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("Expiry sweep failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			s.logger.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}
