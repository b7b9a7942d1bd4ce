package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/server/auth"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type ctxKey string

const userKey ctxKey = "user"

// public methods skip token validation.
var public = map[string]bool{
	FullMethod("Ping"): true,
}

func userFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if public[info.FullMethod] || !strings.HasPrefix(info.FullMethod, "/"+ServiceName+"/") {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(strings.ToLower(common.AuthorizationHeaderName)); len(values) > 0 {
			header = values[0]
		}
	}

	token, err := auth.ExtractBearer(header)
	if err != nil {
		s.logger.Warn(ctx, "missing token", "method", info.FullMethod)
		return nil, toStatus(err)
	}

	user, err := s.auth.Validate(ctx, token)
	if err != nil {
		s.logger.Warn(ctx, "token rejected", "method", info.FullMethod, "error", err.Error())
		return nil, toStatus(err)
	}

	return handler(context.WithValue(ctx, userKey, user), req)
}
