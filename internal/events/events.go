package events

import (
	"context"

	"github.com/alfredjeanlab/counsel/internal/model"
)

// Event topic constants
const (
	TopicRecordUpserted = "counsel.record.upserted"
	TopicRecordRemoved  = "counsel.record.removed"

	// Lawyer review events
	TopicLawyerVerified = "counsel.lawyer.verified"
	TopicLawyerRejected = "counsel.lawyer.rejected"

	// TopicAll matches every counsel event.
	TopicAll = "counsel.>"
)

// Event types

type RecordUpserted struct {
	Record  *model.Record `json:"record"`
	Created bool          `json:"created"`
}

type RecordRemoved struct {
	Kind model.Kind `json:"kind"`
	ID   string     `json:"id"`
}

type LawyerVerified struct {
	Lawyer *model.Record `json:"lawyer"`
}

type LawyerRejected struct {
	LawyerID string `json:"lawyer_id"`
	Name     string `json:"name,omitempty"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
