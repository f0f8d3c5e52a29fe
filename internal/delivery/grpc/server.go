package grpc

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"pulpit/config"
	"pulpit/internal/delivery"
	"pulpit/internal/errors"

	"go.uber.org/fx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type grpcServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *grpc.Server
}

// ServerParams holds dependencies for the gRPC server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc              fx.Lifecycle
	Cfg             *config.Config
	Logger          *slog.Logger
	AuthInterceptor *AuthInterceptor
}

// NewServer builds the gRPC delivery. Health and reflection are registered
// so the gate contract is reachable before business procedures land.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor(params.Logger),
			params.AuthInterceptor.Unary(),
		),
	)

	healthpb.RegisterHealthServer(server, health.NewServer())
	reflection.Register(server)

	srv := &grpcServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: server,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func (s *grpcServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.GRPC.Port))

	listener, err := net.Listen("tcp", hostPort)
	if err != nil {
		return errors.Wrap(err, "failed to listen for grpc")
	}

	s.logger.Info("Starting gRPC server", slog.String("host_port", hostPort))

	if err := s.server.Serve(listener); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *grpcServer) stop(ctx context.Context) error {
	s.logger.Info("Shutting down gRPC server")
	s.server.GracefulStop()

	return nil
}
