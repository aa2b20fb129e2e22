// Package client provides a transport-agnostic interface for the counsel
// roster service with HTTP/JSON and gRPC implementations.
package client

import (
	"context"

	"github.com/alfredjeanlab/counsel/internal/model"
)

// RosterClient is the interface the counsel CLI commands use to talk to the
// roster service. HTTPClient implements every operation; GRPCClient covers
// the read operations and returns errors.ErrUnsupported for the rest.
type RosterClient interface {
	// Records
	Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
	GetRecord(ctx context.Context, kind model.Kind, id string) (*model.Record, error)
	PutRecord(ctx context.Context, kind model.Kind, id string, fields map[string]any) (*model.Record, error)
	CreateRecord(ctx context.Context, kind model.Kind, fields map[string]any) (*model.Record, error)
	DeleteRecord(ctx context.Context, kind model.Kind, id string) error

	// Review
	VerifyLawyer(ctx context.Context, id, action string) (*model.Record, error)

	// Views
	Dashboard(ctx context.Context, role, tab string, criteria model.Criteria) (*Dashboard, error)
	Schema(ctx context.Context, kind model.Kind) (*model.Schema, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// SearchRequest holds parameters for searching one kind of record.
type SearchRequest struct {
	Kind     model.Kind
	Criteria model.Criteria
	Limit    int
	Offset   int
}

// SearchResponse is a page of matching records; Total counts all matches.
type SearchResponse struct {
	Records []*model.Record `json:"records"`
	Total   int             `json:"total"`
}

// Panel is one rendered dashboard panel.
type Panel struct {
	Name     string          `json:"name"`
	Kind     model.Kind      `json:"kind"`
	Criteria model.Criteria  `json:"criteria,omitempty"`
	Records  []*model.Record `json:"records"`
	Total    int             `json:"total"`
}

// Dashboard is the content of one dashboard tab.
type Dashboard struct {
	Role   string   `json:"role"`
	Tab    string   `json:"tab"`
	Tabs   []string `json:"tabs"`
	Panels []Panel  `json:"panels"`
}
