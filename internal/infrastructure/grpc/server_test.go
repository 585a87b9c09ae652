package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/wekeepgrowing/juansite-billing/internal/config"
)

func startServer(t *testing.T, healthCheck func(context.Context) error) healthpb.HealthClient {
	t.Helper()
	listener := bufconn.Listen(1024 * 1024)
	server := NewServer(&config.Config{}, zap.NewNop(), healthCheck)
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func TestHealth_Serving(t *testing.T) {
	client := startServer(t, func(context.Context) error { return nil })

	for _, service := range []string{"", config.ServiceName} {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	}
}

func TestHealth_StoreDown(t *testing.T) {
	client := startServer(t, func(context.Context) error { return errors.New("connection refused") })

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: config.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
