// Package grpc exposes read-mostly library operations over gRPC together with
// the standard health service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/cocreate/internal/logging"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Generations is the part of the generation service reachable over gRPC.
type Generations interface {
	History(ctx context.Context, user *models.User) ([]*models.Generation, error)
	Saved(ctx context.Context, user *models.User) ([]*models.Generation, error)
	Get(ctx context.Context, user *models.User, id int64) (*models.Generation, error)
	Save(ctx context.Context, user *models.User, id int64) error
	Unsave(ctx context.Context, user *models.User, id int64) error
}

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Validate(ctx context.Context, token string) (*models.User, error)
}

type GRPCServer struct {
	address     string
	generations Generations
	auth        Authenticator
	logger      logging.Logger
	health      *health.Server
}

func NewGRPCServer(a string, l logging.Logger, gs Generations, auth Authenticator) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		generations: gs,
		auth:        auth,
		health:      health.NewServer(),
	}
}

// Register attaches the library and health services to srv.
func (s *GRPCServer) Register(srv *grpc.Server) {
	RegisterLibraryServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	s.Register(srv)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
