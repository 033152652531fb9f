package grpc

import (
	"fmt"
	"log/slog"
	"net"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/bibbank/agricredit/pkg/tlsutil"
)

// ServerOptions configures the gRPC server.
type ServerOptions struct {
	CertFile   string
	KeyFile    string
	Reflection bool
}

// Server wraps a gRPC server with the AgriCredit handler registered.
type Server struct {
	gs     *grpclib.Server
	health *health.Server
	logger *slog.Logger
}

// NewServer creates and configures the gRPC server. TLS is enabled when both
// a certificate and key file are given.
func NewServer(handler AgriCreditServiceServer, logger *slog.Logger, opts ServerOptions) (*Server, error) {
	serverOpts := []grpclib.ServerOption{
		grpclib.ChainUnaryInterceptor(RecoveryInterceptor(logger), LoggingInterceptor(logger)),
	}

	if opts.CertFile != "" && opts.KeyFile != "" {
		creds, err := tlsutil.ServerCredentials(opts.CertFile, opts.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load TLS credentials: %w", err)
		}
		serverOpts = append(serverOpts, grpclib.Creds(creds))
		logger.Info("gRPC TLS enabled", "cert", opts.CertFile)
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpclib.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterAgriCreditServiceServer(gs, handler)

	return &Server{gs: gs, health: healthSrv, logger: logger}, nil
}

// Serve listens on addr and blocks until the server stops.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.logger.Info("gRPC server listening", "addr", addr)
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	return s.gs.Serve(lis)
}

// GracefulStop marks the service as not serving and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}
