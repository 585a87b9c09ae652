package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	handlers "github.com/wekeepgrowing/juansite-billing/internal/adapter/handler/http"
	"github.com/wekeepgrowing/juansite-billing/internal/config"
	"github.com/wekeepgrowing/juansite-billing/internal/middleware/auth"
	"github.com/wekeepgrowing/juansite-billing/internal/usecase"
	"github.com/wekeepgrowing/juansite-billing/pkg/logger"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Catalog       *usecase.Catalog
	Subscriptions *usecase.SubscriptionService
	Transactions  *usecase.TransactionService
	Workflow      *usecase.UpgradeWorkflow
	// HealthCheck reports whether the record store is reachable. Optional.
	HealthCheck func(ctx context.Context) error
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	services Services
}

func NewServer(cfg *config.Config, log *zap.Logger, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewRequestValidator()
	logger.WithEchoLogger(e, log)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	s := &Server{
		config:   cfg,
		logger:   log,
		echo:     e,
		services: services,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	addr := s.config.Server.HTTP.Address()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.health)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	subscriptionHandler := handlers.NewSubscriptionHandler(s.logger, s.services.Catalog, s.services.Subscriptions)
	upgradeHandler := handlers.NewUpgradeHandler(s.services.Workflow, s.logger)
	transactionHandler := handlers.NewTransactionHandler(s.logger, s.services.Transactions)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.Auth.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/metrics",
			"/api/v1/tiers",
		},
	}

	v1 := s.echo.Group("/api/v1")

	// Public
	v1.GET("/tiers", subscriptionHandler.GetTiers)

	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	subscriptions := protected.Group("/subscriptions")
	subscriptions.GET("/current", subscriptionHandler.GetCurrentSubscription)
	subscriptions.GET("/options", subscriptionHandler.GetPricingOptions)

	upgrades := protected.Group("/upgrades")
	upgrades.POST("", upgradeHandler.StartUpgrade)
	upgrades.POST("/:transactionId/reference", upgradeHandler.SubmitReference)

	protected.GET("/transactions", transactionHandler.ListTransactions)
}

func (s *Server) health(c echo.Context) error {
	status := http.StatusOK
	body := map[string]string{
		"status":  "healthy",
		"service": s.config.Service.Name,
	}
	if s.services.HealthCheck != nil {
		if err := s.services.HealthCheck(c.Request().Context()); err != nil {
			s.logger.Warn("Health check failed", zap.Error(err))
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
		}
	}
	return c.JSON(status, body)
}
