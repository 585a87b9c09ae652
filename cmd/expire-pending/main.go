// Command expire-pending runs one expiry sweep over pending payment transactions
// and exits. It suits deployments that schedule sweeps externally.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/juansite-billing/internal/config"
	"github.com/wekeepgrowing/juansite-billing/internal/infrastructure/database"
	"github.com/wekeepgrowing/juansite-billing/internal/usecase"
	"github.com/wekeepgrowing/juansite-billing/pkg/logger"
)

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "maximum time for the sweep")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if !cfg.Expiry.Enabled {
		zapLogger.Info("Expiry is disabled; nothing to sweep")
		return
	}

	if cfg.Database.Driver == config.DriverMemory {
		zapLogger.Warn("Memory record store has nothing to expire across processes")
	}

	repos, err := database.Open(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open record store", zap.Error(err))
	}
	defer func() {
		if err := repos.Close(); err != nil {
			zapLogger.Error("Failed to close record store", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sweeper := usecase.NewExpirySweeper(repos.Transaction, cfg.Expiry.PendingTTL, cfg.Expiry.BatchSize, zapLogger)
	expired, err := sweeper.SweepOnce(ctx)
	if err != nil {
		zapLogger.Fatal("Expiry sweep failed", zap.Int("expired", expired), zap.Error(err))
	}

	zapLogger.Info("Expiry sweep finished",
		zap.Int("expired", expired),
		zap.Duration("pending_ttl", cfg.Expiry.PendingTTL))
}
