package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wekeepgrowing/juansite-billing/internal/config"
	"github.com/wekeepgrowing/juansite-billing/pkg/logger"
)

// NewConnection opens the postgres record store, sizes its pool and checks that
// it answers.
func NewConnection(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                                   logger.NewGormLogger(log, gormlogger.Warn, cfg.SlowThreshold, true),
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	log.Info("Connected to postgres",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
		zap.Int("max_open_conns", cfg.MaxOpenConns))

	return db, nil
}

// Ping reports whether the database answers within ctx
func Ping(ctx context.Context, db *gorm.DB) error {
	pool, err := db.DB()
	if err != nil {
		return err
	}
	return pool.PingContext(ctx)
}

// Close closes the database connection
func Close(db *gorm.DB, log *zap.Logger) error {
	pool, err := db.DB()
	if err != nil {
		return fmt.Errorf("access connection pool: %w", err)
	}
	if err := pool.Close(); err != nil {
		return fmt.Errorf("close postgres: %w", err)
	}

	log.Info("Postgres connection closed")
	return nil
}
