package backend

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ErrNotServing is returned by Ping when the backend answers but reports
// a status other than SERVING.
var ErrNotServing = errors.New("backend not serving")

// HealthChecker probes the backend's gRPC health service.
type HealthChecker struct {
	conn    *grpc.ClientConn
	client  healthpb.HealthClient
	service string
}

// NewHealthChecker prepares a lazy connection to addr; no I/O happens
// until the first Ping. service is the health service name ("" for the
// whole server).
func NewHealthChecker(addr, service string) (*HealthChecker, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("health client %s: %w", addr, err)
	}
	return &HealthChecker{conn: conn, client: healthpb.NewHealthClient(conn), service: service}, nil
}

func (h *HealthChecker) Ping(ctx context.Context) error {
	resp, err := h.client.Check(ctx, &healthpb.HealthCheckRequest{Service: h.service})
	if err != nil {
		return err
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrNotServing, resp.GetStatus())
	}
	return nil
}

func (h *HealthChecker) Close() error {
	return h.conn.Close()
}
