package logger

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewGrpcUnaryServerInterceptor logs each unary call with its status code and duration.
func NewGrpcUnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logGrpcCall(logger, info.FullMethod, err, time.Since(start))
		return resp, err
	}
}

// NewGrpcStreamServerInterceptor logs each stream once it ends, with message counts.
func NewGrpcStreamServerInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		counted := &countingStream{ServerStream: ss}
		err := handler(srv, counted)
		logGrpcCall(logger, info.FullMethod, err, time.Since(start),
			zap.Int("grpc.received", counted.received),
			zap.Int("grpc.sent", counted.sent))
		return err
	}
}

func logGrpcCall(logger *zap.Logger, fullMethod string, err error, elapsed time.Duration, extra ...zap.Field) {
	code := status.Code(err)
	service, method, _ := strings.Cut(strings.TrimPrefix(fullMethod, "/"), "/")

	fields := append([]zap.Field{
		zap.String("grpc.service", service),
		zap.String("grpc.method", method),
		zap.String("grpc.code", code.String()),
		zap.Duration("grpc.duration", elapsed),
	}, extra...)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	logger.Log(grpcLevel(code), "gRPC call", fields...)
}

// grpcLevel keeps successful calls, such as health probes, out of info logs.
func grpcLevel(code codes.Code) zapcore.Level {
	switch code {
	case codes.OK, codes.NotFound, codes.Canceled:
		return zapcore.DebugLevel
	case codes.InvalidArgument, codes.FailedPrecondition, codes.DeadlineExceeded,
		codes.Unavailable, codes.ResourceExhausted, codes.Unauthenticated, codes.PermissionDenied:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

type countingStream struct {
	grpc.ServerStream
	received int
	sent     int
}

func (s *countingStream) RecvMsg(m interface{}) error {
	err := s.ServerStream.RecvMsg(m)
	if err == nil {
		s.received++
	}
	return err
}

func (s *countingStream) SendMsg(m interface{}) error {
	err := s.ServerStream.SendMsg(m)
	if err == nil {
		s.sent++
	}
	return err
}
