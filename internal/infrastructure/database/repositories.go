package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/juansite-billing/internal/adapter/repository"
	"github.com/wekeepgrowing/juansite-billing/internal/config"
	domainRepo "github.com/wekeepgrowing/juansite-billing/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Transaction  domainRepo.TransactionRepository
	Subscription domainRepo.SubscriptionRepository
	Upgrade      domainRepo.UpgradeStore

	db     *gorm.DB
	logger *zap.Logger
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Transaction:  repository.NewTransactionRepository(db, logger),
		Subscription: repository.NewSubscriptionRepository(db, logger),
		Upgrade:      repository.NewUpgradeStore(db, logger),
		db:           db,
		logger:       logger,
	}
}

// NewMemoryRepositories backs every repository with one in-process store.
// Records are lost on restart.
func NewMemoryRepositories(logger *zap.Logger) *Repositories {
	store := repository.NewMemoryStore()
	return &Repositories{
		Transaction:  store,
		Subscription: store,
		Upgrade:      store,
		logger:       logger,
	}
}

// Open selects the record store named by cfg.Driver, migrating postgres when asked.
func Open(cfg *config.DatabaseConfig, logger *zap.Logger) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory record store; data will not survive a restart")
		return NewMemoryRepositories(logger), nil
	case config.DriverPostgres:
		db, err := NewConnection(cfg, logger)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := Migrate(db, logger); err != nil {
				_ = Close(db, logger)
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		return NewRepositories(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// HealthCheck pings the database. The memory store is always healthy.
func (r *Repositories) HealthCheck(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return Ping(ctx, r.db)
}

// Close releases the database connection, if any
func (r *Repositories) Close() error {
	if r.db == nil {
		return nil
	}
	return Close(r.db, r.logger)
}
