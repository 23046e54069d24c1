package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// loggingInterceptor records every unary call at debug level and failed
// calls at warn level.
func (s *HealthServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	if err != nil {
		s.logger.Warn(ctx, "grpc call failed", "method", info.FullMethod, "code", status.Code(err).String(), "error", err)
		return resp, err
	}

	s.logger.Debug(ctx, "grpc call", "method", info.FullMethod, "duration", time.Since(start))
	return resp, nil
}
