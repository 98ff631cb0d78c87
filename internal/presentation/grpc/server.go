package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/agrofin/financing-service/internal/infrastructure/config"
	"github.com/agrofin/financing-service/pkg/auth"
	"github.com/agrofin/financing-service/pkg/tlsutil"
)

// Server wraps a gRPC server with the financing handler registered.
type Server struct {
	gs      *grpc.Server
	handler *FinancingHandler
	logger  *slog.Logger
}

// NewServer creates and configures the gRPC server. jwtService may be
// nil when auth is disabled for local development.
func NewServer(handler *FinancingHandler, logger *slog.Logger, jwtService *auth.JWTService, tlsCfg config.TLSConfig) *Server {
	var serverOpts []grpc.ServerOption

	if jwtService != nil {
		// Skip auth on health check methods only.
		authInterceptor := auth.UnaryAuthInterceptor(jwtService, []string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		})
		serverOpts = append(serverOpts, grpc.UnaryInterceptor(authInterceptor))
	} else {
		logger.Warn("JWT auth disabled, all gRPC methods are unauthenticated")
	}

	if tlsCfg.Enabled && tlsCfg.CertFile != "" && tlsCfg.KeyFile != "" {
		creds, err := tlsutil.ServerCredentials(tlsCfg.CertFile, tlsCfg.KeyFile)
		if err != nil {
			logger.Error("failed to load TLS credentials, starting without TLS", "error", err)
		} else {
			serverOpts = append(serverOpts, grpc.Creds(creds))
			logger.Info("gRPC TLS enabled", "cert", tlsCfg.CertFile, "key", tlsCfg.KeyFile)
		}
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus("financing-service", healthpb.HealthCheckResponse_SERVING)

	// Only enable reflection when GRPC_REFLECTION=true.
	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(gs)
	}

	RegisterFinancingServiceServer(gs, handler)

	return &Server{
		gs:      gs,
		handler: handler,
		logger:  logger,
	}
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.logger.Info("gRPC server listening", "addr", addr)
	return s.gs.Serve(lis)
}

// GracefulStop stops the server gracefully.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.gs.GracefulStop()
}
