package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/wekeepgrowing/juansite-billing/internal/config"
	"github.com/wekeepgrowing/juansite-billing/pkg/logger"
)

// Server serves the standard gRPC health protocol for the billing service. The
// serving status follows the record store check.
type Server struct {
	config      *config.Config
	logger      *zap.Logger
	server      *grpc.Server
	health      *health.Server
	healthCheck func(ctx context.Context) error
	stop        chan struct{}
	stopOnce    sync.Once
}

func NewServer(cfg *config.Config, log *zap.Logger, healthCheck func(ctx context.Context) error) *Server {
	server := grpc.NewServer(
		grpc.UnaryInterceptor(logger.NewGrpcUnaryServerInterceptor(log)),
		grpc.StreamInterceptor(logger.NewGrpcStreamServerInterceptor(log)),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	s := &Server{
		config:      cfg,
		logger:      log,
		server:      server,
		health:      healthServer,
		healthCheck: healthCheck,
		stop:        make(chan struct{}),
	}
	s.refreshHealth(context.Background())
	return s
}

func (s *Server) Start() error {
	addr := s.config.Server.GRPC.Address()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.logger.Info("Starting gRPC server", zap.String("address", addr))
	return s.Serve(listener)
}

// Serve accepts connections on listener until Shutdown.
func (s *Server) Serve(listener net.Listener) error {
	go s.watchHealth(15 * time.Second)
	return s.server.Serve(listener)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return ctx.Err()
	}
}

func (s *Server) watchHealth(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			s.refreshHealth(ctx)
			cancel()
		}
	}
}

func (s *Server) refreshHealth(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.healthCheck != nil {
		if err := s.healthCheck(ctx); err != nil {
			s.logger.Warn("Record store health check failed", zap.Error(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(config.ServiceName, status)
}
