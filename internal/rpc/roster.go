// Package rpc describes the counsel.v1.RosterService gRPC service. Requests
// and responses travel as google.protobuf.Struct messages whose layout is
// given by the Go types in messages.go.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "counsel.v1.RosterService"

// Full method names, as seen by interceptors.
const (
	SearchMethod    = "/" + ServiceName + "/Search"
	GetRecordMethod = "/" + ServiceName + "/GetRecord"
	HealthMethod    = "/" + ServiceName + "/Health"
)

// RosterServiceServer is the server API for RosterService.
type RosterServiceServer interface {
	Search(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Health(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterRosterServiceServer registers srv with s.
func RegisterRosterServiceServer(s grpc.ServiceRegistrar, srv RosterServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc is the grpc.ServiceDesc for RosterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RosterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Search", Handler: unaryHandler(SearchMethod, RosterServiceServer.Search)},
		{MethodName: "GetRecord", Handler: unaryHandler(GetRecordMethod, RosterServiceServer.GetRecord)},
		{MethodName: "Health", Handler: unaryHandler(HealthMethod, RosterServiceServer.Health)},
	},
	Streams: []grpc.StreamDesc{},
}

type unaryMethod func(RosterServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RosterServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RosterServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RosterServiceClient is the client API for RosterService.
type RosterServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRosterServiceClient(cc grpc.ClientConnInterface) *RosterServiceClient {
	return &RosterServiceClient{cc: cc}
}

func (c *RosterServiceClient) Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SearchMethod, in, opts...)
}

func (c *RosterServiceClient) GetRecord(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetRecordMethod, in, opts...)
}

func (c *RosterServiceClient) Health(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, HealthMethod, in, opts...)
}

func (c *RosterServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
