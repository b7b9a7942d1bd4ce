package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "cocreate.v1.Library"

// LibraryServer is the server side of cocreate.v1.Library. Requests and
// responses are google.protobuf.Struct documents.
type LibraryServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListGenerations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSavedGenerations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGeneration(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveGeneration(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UnsaveGeneration(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(LibraryServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LibraryServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LibraryServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullMethod returns the wire name of a Library method.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

var libraryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LibraryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", LibraryServer.Ping),
		unary("GetProfile", LibraryServer.GetProfile),
		unary("ListGenerations", LibraryServer.ListGenerations),
		unary("ListSavedGenerations", LibraryServer.ListSavedGenerations),
		unary("GetGeneration", LibraryServer.GetGeneration),
		unary("SaveGeneration", LibraryServer.SaveGeneration),
		unary("UnsaveGeneration", LibraryServer.UnsaveGeneration),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cocreate/v1/library.proto",
}

// RegisterLibraryServer registers srv on s.
func RegisterLibraryServer(s grpc.ServiceRegistrar, srv LibraryServer) {
	s.RegisterService(&libraryServiceDesc, srv)
}

// LibraryClient calls cocreate.v1.Library over a client connection.
type LibraryClient struct {
	cc grpc.ClientConnInterface
}

func NewLibraryClient(cc grpc.ClientConnInterface) *LibraryClient {
	return &LibraryClient{cc: cc}
}

// Call invokes method with in and returns the response document.
func (c *LibraryClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
