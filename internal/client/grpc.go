package client

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/rpc"
)

// GRPCClient implements RosterClient using the gRPC transport. Only the
// read operations exist as RPCs; the others return errors.ErrUnsupported.
type GRPCClient struct {
	conn   *grpc.ClientConn
	client *rpc.RosterServiceClient
}

var _ RosterClient = (*GRPCClient)(nil)

// NewGRPCClient connects to the given gRPC address and returns a client.
// When token is non-empty it is sent as a bearer token on every call.
func NewGRPCClient(addr, token string, opts ...grpc.DialOption) (*GRPCClient, error) {
	dialOpts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if token != "" {
		dialOpts = append(dialOpts, grpc.WithPerRPCCredentials(bearerToken(token)))
	}
	conn, err := grpc.NewClient(addr, append(dialOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial: %w", err)
	}
	return &GRPCClient{
		conn:   conn,
		client: rpc.NewRosterServiceClient(conn),
	}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// bearerToken attaches an Authorization header to each RPC.
type bearerToken string

func (t bearerToken) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + string(t)}, nil
}

func (bearerToken) RequireTransportSecurity() bool { return false }

// --- Records ---

func (c *GRPCClient) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	in, err := rpc.Encode(rpc.SearchRequest{
		Kind:     string(req.Kind),
		Criteria: req.Criteria.Active(),
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		return nil, err
	}
	out, err := c.client.Search(ctx, in)
	if err != nil {
		return nil, err
	}
	var resp rpc.SearchResponse
	if err := rpc.Decode(out, &resp); err != nil {
		return nil, err
	}
	return &SearchResponse{Records: resp.Records, Total: resp.Total}, nil
}

func (c *GRPCClient) GetRecord(ctx context.Context, kind model.Kind, id string) (*model.Record, error) {
	in, err := rpc.Encode(rpc.GetRecordRequest{Kind: string(kind), ID: id})
	if err != nil {
		return nil, err
	}
	out, err := c.client.GetRecord(ctx, in)
	if err != nil {
		return nil, err
	}
	var resp rpc.GetRecordResponse
	if err := rpc.Decode(out, &resp); err != nil {
		return nil, err
	}
	return resp.Record, nil
}

func (c *GRPCClient) PutRecord(context.Context, model.Kind, string, map[string]any) (*model.Record, error) {
	return nil, unsupported("put")
}

func (c *GRPCClient) CreateRecord(context.Context, model.Kind, map[string]any) (*model.Record, error) {
	return nil, unsupported("create")
}

func (c *GRPCClient) DeleteRecord(context.Context, model.Kind, string) error {
	return unsupported("delete")
}

func (c *GRPCClient) VerifyLawyer(context.Context, string, string) (*model.Record, error) {
	return nil, unsupported("verify")
}

func (c *GRPCClient) Dashboard(context.Context, string, string, model.Criteria) (*Dashboard, error) {
	return nil, unsupported("dashboard")
}

func (c *GRPCClient) Schema(context.Context, model.Kind) (*model.Schema, error) {
	return nil, unsupported("schema")
}

// --- Health ---

func (c *GRPCClient) Health(ctx context.Context) (string, error) {
	out, err := c.client.Health(ctx, &structpb.Struct{})
	if err != nil {
		return "", err
	}
	var resp rpc.HealthResponse
	if err := rpc.Decode(out, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func unsupported(op string) error {
	return fmt.Errorf("%s over gRPC: %w (use the HTTP API)", op, errors.ErrUnsupported)
}
