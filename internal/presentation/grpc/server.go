package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/tallyworks/tally/pkg/auth"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server wraps the gRPC server with ledger service handlers.
type Server struct {
	grpcServer   *grpc.Server
	healthServer *health.Server
	handler      *LedgerHandler
	port         int
	logger       *slog.Logger
}

// NewServer creates a new gRPC server with the provided handler.
func NewServer(handler *LedgerHandler, port int, logger *slog.Logger, jwtService *auth.JWTService, meter metric.Meter) (*Server, error) {
	// Add auth interceptor, skipping health check methods.
	authInterceptor := auth.UnaryAuthInterceptor(jwtService, []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	})

	metricsInterceptor, err := UnaryMetricsInterceptor(meter)
	if err != nil {
		return nil, fmt.Errorf("init metrics interceptor: %w", err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(authInterceptor, metricsInterceptor))
	healthServer := health.NewServer()

	// Register health check service.
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Register the LedgerService handler.
	RegisterLedgerServiceServer(grpcServer, handler)

	// Only enable reflection when GRPC_REFLECTION=true.
	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(grpcServer)
	}

	return &Server{
		grpcServer:   grpcServer,
		healthServer: healthServer,
		handler:      handler,
		port:         port,
		logger:       logger,
	}, nil
}

// Start begins listening for gRPC connections.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}

	s.logger.Info("gRPC server starting", "port", s.port)

	// Mark the service as healthy.
	s.healthServer.SetServingStatus("tally-ledger", healthpb.HealthCheckResponse_SERVING)

	if err := s.grpcServer.Serve(listener); err != nil {
		return fmt.Errorf("gRPC server failed: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the gRPC server.
func (s *Server) Stop() {
	s.logger.Info("stopping gRPC server")
	s.healthServer.SetServingStatus("tally-ledger", healthpb.HealthCheckResponse_NOT_SERVING)
	s.grpcServer.GracefulStop()
}

// GRPCServer returns the underlying grpc.Server for additional registration.
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpcServer
}
