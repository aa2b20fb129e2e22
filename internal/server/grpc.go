package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/alfredjeanlab/counsel/internal/rpc"
)

// NewGRPCServer creates a gRPC server with standard interceptors and
// registers the RosterService backed by s.
func NewGRPCServer(s *Server, authToken string) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor,
			LoggingInterceptor,
			AuthInterceptor(authToken),
		),
	)
	rpc.RegisterRosterServiceServer(srv, &rosterService{s: s})
	return srv
}

// rosterService adapts Server to the RosterService RPCs.
type rosterService struct {
	s *Server
}

func (r *rosterService) Search(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req rpc.SearchRequest
	if err := rpc.Decode(in, &req); err != nil {
		return nil, toStatus(inputError(err.Error()))
	}
	res, err := r.s.search(ctx, req.Kind, req.Criteria, req.Limit, req.Offset)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeReply(rpc.SearchResponse{Records: res.Records, Total: res.Total})
}

func (r *rosterService) GetRecord(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req rpc.GetRecordRequest
	if err := rpc.Decode(in, &req); err != nil {
		return nil, toStatus(inputError(err.Error()))
	}
	rec, err := r.s.getRecord(ctx, req.Kind, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeReply(rpc.GetRecordResponse{Record: rec})
}

func (r *rosterService) Health(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return encodeReply(rpc.HealthResponse{Status: "ok"})
}

func encodeReply(msg any) (*structpb.Struct, error) {
	out, err := rpc.Encode(msg)
	if err != nil {
		return nil, toStatus(err)
	}
	return out, nil
}
