package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/alfredjeanlab/counsel/internal/model"
)

type SearchRequest struct {
	Kind     string         `json:"kind"`
	Criteria model.Criteria `json:"criteria,omitempty"`
	Limit    int            `json:"limit,omitempty"`
	Offset   int            `json:"offset,omitempty"`
}

type SearchResponse struct {
	Records []*model.Record `json:"records"`
	Total   int             `json:"total"`
}

type GetRecordRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type GetRecordResponse struct {
	Record *model.Record `json:"record"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Encode converts a message into a Struct using its JSON layout.
func Encode(msg any) (*structpb.Struct, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", msg, err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("encode %T: %w", msg, err)
	}
	return s, nil
}

// Decode fills msg from a Struct. A nil Struct decodes as an empty message.
func Decode(s *structpb.Struct, msg any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	b, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode %T: %w", msg, err)
	}
	if err := json.Unmarshal(b, msg); err != nil {
		return fmt.Errorf("decode %T: %w", msg, err)
	}
	return nil
}
