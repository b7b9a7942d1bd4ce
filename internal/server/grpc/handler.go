package grpc

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// toStatus maps a service error onto a gRPC status with a client-safe message.
func toStatus(err error) error {
	var code codes.Code
	switch common.KindOf(err) {
	case common.KindValidation:
		code = codes.InvalidArgument
	case common.KindConflict:
		code = codes.FailedPrecondition
	case common.KindAuth:
		code = codes.Unauthenticated
	case common.KindNotFound:
		code = codes.NotFound
	case common.KindUpstream, common.KindUnavailable:
		code = codes.Unavailable
	default:
		code = codes.Internal
	}
	return status.Error(code, common.PublicMessage(err))
}

// toStruct converts a JSON-serializable object into a Struct.
func toStruct(v map[string]any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, common.ErrorInternal.Error())
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Error(codes.Internal, common.ErrorInternal.Error())
	}
	return out, nil
}

// idField reads a positive integer id from in[name].
func idField(in *structpb.Struct, name string) (int64, error) {
	v, ok := in.GetFields()[name]
	if !ok {
		return 0, toStatus(common.ErrInvalidGenerationID)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != float64(int64(n.NumberValue)) {
		return 0, toStatus(common.ErrInvalidGenerationID)
	}
	return int64(n.NumberValue), nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"status": "OK"})
}

func (s *GRPCServer) GetProfile(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(map[string]any{"user": userFromContext(ctx)})
}

func (s *GRPCServer) list(ctx context.Context, key string, fetch func(context.Context, *models.User) ([]*models.Generation, error)) (*structpb.Struct, error) {
	gens, err := fetch(ctx, userFromContext(ctx))
	if err != nil {
		s.logger.Error(ctx, "list generations", "error", err.Error())
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{key: gens})
}

func (s *GRPCServer) ListGenerations(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return s.list(ctx, "generations", s.generations.History)
}

func (s *GRPCServer) ListSavedGenerations(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return s.list(ctx, "saved_generations", s.generations.Saved)
}

func (s *GRPCServer) GetGeneration(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(in, "id")
	if err != nil {
		return nil, err
	}

	gen, err := s.generations.Get(ctx, userFromContext(ctx), id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(map[string]any{"generation": gen})
}

func (s *GRPCServer) SaveGeneration(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(in, "gen_id")
	if err != nil {
		return nil, err
	}

	if err := s.generations.Save(ctx, userFromContext(ctx), id); err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{"message": "generation saved"})
}

func (s *GRPCServer) UnsaveGeneration(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(in, "gen_id")
	if err != nil {
		return nil, err
	}

	if err := s.generations.Unsave(ctx, userFromContext(ctx), id); err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{"message": "generation removed from saved"})
}
