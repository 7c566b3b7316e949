package grpc

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name reported for the vault. The empty
// name, meaning the whole server, is answered the same way.
const ServiceName = "go-pass-vault"

// Handler is the root gRPC transport handler.
//
// It serves grpc.health.v1.Health: every Check pings the storage backend and
// reports SERVING when the ping succeeds. A handler instance is created once
// at startup and shared by the gRPC server.
type Handler struct {
	healthpb.UnimplementedHealthServer

	// health is pinged on every Check.
	health store.HealthChecker

	logger *logger.Logger
}

// NewHandler constructs a [Handler] backed by health.
func NewHandler(health store.HealthChecker, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		health: health,
		logger: logger,
	}
}

// Register attaches the handler's services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h)
}

// Check implements [healthpb.HealthServer].
func (h *Handler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if name := req.GetService(); name != "" && name != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", name)
	}

	if err := h.health.Ping(ctx); err != nil {
		h.logger.Err(err).Str("func", "*Handler.Check").Msg("storage ping failed")
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
