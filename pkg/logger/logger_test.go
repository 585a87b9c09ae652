package logger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/wekeepgrowing/juansite-billing/pkg/errors"
)

func TestConfigLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, Config{Level: "debug"}.level())
	assert.Equal(t, zapcore.WarnLevel, Config{Level: "warn"}.level())
	assert.Equal(t, zapcore.InfoLevel, Config{Level: "verbose"}.level())
}

func TestNewZapLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billing.log")
	logger, err := NewZapLogger(Config{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)

	logger.Info("upgrade completed", zap.String("tier_id", "growth"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "upgrade completed", entry["message"])
	assert.Equal(t, "growth", entry["tier_id"])
}

func TestNewZapLogger_FileWithoutPath(t *testing.T) {
	_, err := NewZapLogger(Config{Output: "file"})
	assert.Error(t, err)
}

func serveError(t *testing.T, err error) (int, map[string]string, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	e := echo.New()
	WithEchoLogger(e, zap.New(core))
	e.GET("/x", func(echo.Context) error { return err })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body, logs
}

func TestErrorHandler_AppError(t *testing.T) {
	notFound := apperrors.NewAppError(apperrors.ErrNotFound, "payment transaction not found", nil)

	code, body, logs := serveError(t, apperrors.ToHTTPError(notFound))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "payment transaction not found", body["error"])
	assert.Equal(t, apperrors.ErrNotFound, body["code"])
	assert.Zero(t, logs.Len(), "client errors are not logged by the error handler")
}

func TestErrorHandler_PlainError(t *testing.T) {
	code, body, logs := serveError(t, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, apperrors.ErrInternal, body["code"])
	assert.NotContains(t, body["error"], "connection reset")
	assert.Equal(t, 1, logs.FilterMessage("Request failed").Len())
}

func TestErrorHandler_EchoError(t *testing.T) {
	code, body, _ := serveError(t, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required"))

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authentication required", body["error"])
	assert.Equal(t, apperrors.ErrUnauthenticated, body["code"])
}

func TestRequestLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := echo.New()
	e.Use(NewEchoRequestLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error {
		c.Set("user_id", "u1")
		return c.NoContent(http.StatusOK)
	})
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, path := range []string{"/ok", "/health", "/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "u1", entries[0].ContextMap()["user_id"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestGrpcLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, grpcLevel(codes.OK))
	assert.Equal(t, zapcore.WarnLevel, grpcLevel(codes.Unavailable))
	assert.Equal(t, zapcore.ErrorLevel, grpcLevel(codes.Internal))
}

func TestGrpcUnaryInterceptor(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	interceptor := NewGrpcUnaryServerInterceptor(zap.New(core))

	_, err := interceptor(context.Background(), nil,
		&grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"},
		func(context.Context, interface{}) (interface{}, error) {
			return nil, status.Error(codes.Unavailable, "store down")
		})
	require.Error(t, err)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "grpc.health.v1.Health", entry.ContextMap()["grpc.service"])
	assert.Equal(t, "Check", entry.ContextMap()["grpc.method"])
	assert.Equal(t, "Unavailable", entry.ContextMap()["grpc.code"])
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn, 100*time.Millisecond, true)
	query := func() (string, int64) { return `SELECT * FROM "payment_transactions"`, 1 }

	gl.Trace(context.Background(), time.Now(), query, nil)
	gl.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.Len())

	gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
	gl.Trace(context.Background(), time.Now(), query, errors.New("deadlock detected"))

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "gorm slow query", logs.All()[0].Message)
	assert.Equal(t, "gorm query failed", logs.All()[1].Message)
}
