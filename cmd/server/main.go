package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/juansite-billing/internal/config"
	"github.com/wekeepgrowing/juansite-billing/internal/infrastructure/catalog"
	"github.com/wekeepgrowing/juansite-billing/internal/infrastructure/database"
	grpcServer "github.com/wekeepgrowing/juansite-billing/internal/infrastructure/grpc"
	httpServer "github.com/wekeepgrowing/juansite-billing/internal/infrastructure/http"
	"github.com/wekeepgrowing/juansite-billing/internal/infrastructure/provider"
	billingRedis "github.com/wekeepgrowing/juansite-billing/internal/infrastructure/redis"
	"github.com/wekeepgrowing/juansite-billing/internal/usecase"
	"github.com/wekeepgrowing/juansite-billing/pkg/logger"
	"github.com/wekeepgrowing/juansite-billing/pkg/messaging"
)

func main() {
	// .env is optional; real environment variables win
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
	zapLogger = zapLogger.With(zap.String("service", cfg.Service.Name), zap.String("version", cfg.Service.Version))

	repos, err := database.Open(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open record store", zap.Error(err))
	}
	defer func() {
		if err := repos.Close(); err != nil {
			zapLogger.Error("Failed to close record store", zap.Error(err))
		}
	}()

	tierCatalog := usecase.DefaultCatalog()
	if cfg.Catalog.File != "" {
		tiers, err := catalog.LoadTiersFromYAML(cfg.Catalog.File)
		if err != nil {
			zapLogger.Fatal("Failed to load tier catalog", zap.String("file", cfg.Catalog.File), zap.Error(err))
		}
		if tierCatalog, err = usecase.NewCatalog(tiers); err != nil {
			zapLogger.Fatal("Invalid tier catalog", zap.String("file", cfg.Catalog.File), zap.Error(err))
		}
	}

	verifier, err := provider.NewFactory(cfg.Payment, zapLogger).GetConfiguredVerifier()
	if err != nil {
		zapLogger.Fatal("Failed to create payment verifier", zap.Error(err))
	}
	zapLogger.Info("Payment verifier configured", zap.String("verifier", string(verifier.Name())))

	var guard usecase.InFlightGuard = usecase.NewLocalGuard()
	var publisher usecase.EventPublisher
	if cfg.Redis.Enabled() {
		redisClient, err := billingRedis.NewClient(cfg.Redis, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		guard = billingRedis.NewLockGuard(redisClient, cfg.Redis.LockTTL, zapLogger)
		publisher = messaging.NewRedisBus(redisClient)
	} else {
		zapLogger.Warn("Redis not configured; in-flight guard is process-local and upgrade events are not published")
	}

	subscriptions := usecase.NewSubscriptionService(repos.Subscription, tierCatalog, zapLogger)
	workflow := usecase.NewUpgradeWorkflow(
		tierCatalog,
		subscriptions,
		repos.Transaction,
		repos.Upgrade,
		verifier,
		guard,
		usecase.PaymentSettings{Method: cfg.Payment.Method, CheckoutURL: cfg.Payment.CheckoutURL},
		zapLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var background sync.WaitGroup
	if cfg.Expiry.Enabled {
		sweeper := usecase.NewExpirySweeper(repos.Transaction, cfg.Expiry.PendingTTL, cfg.Expiry.BatchSize, zapLogger)
		background.Add(1)
		go func() {
			defer background.Done()
			sweeper.Run(ctx, cfg.Expiry.Interval)
		}()
	} else {
		zapLogger.Info("Expiry sweeper disabled; pending transactions stay open until a reference arrives")
	}

	if publisher != nil && cfg.Relay.Enabled {
		relay := usecase.NewEventRelay(repos.Upgrade, publisher, cfg.Relay.Channel, cfg.Relay.BatchSize, zapLogger)
		background.Add(1)
		go func() {
			defer background.Done()
			relay.Run(ctx, cfg.Relay.Interval)
		}()
	}

	grpcSrv := grpcServer.NewServer(cfg, zapLogger, repos.HealthCheck)
	httpSrv := httpServer.NewServer(cfg, zapLogger, httpServer.Services{
		Catalog:       tierCatalog,
		Subscriptions: subscriptions,
		Transactions:  usecase.NewTransactionService(repos.Transaction, zapLogger),
		Workflow:      workflow,
		HealthCheck:   repos.HealthCheck,
	})

	go func() {
		if err := grpcSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
		}
	}()

	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
	}

	cancel()
	background.Wait()

	zapLogger.Info("Servers shut down successfully")
}
