package store

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/counsel/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence interface for roster records.
type Store interface {
	// GetRecord returns the record of the given kind and ID, or ErrNotFound.
	GetRecord(ctx context.Context, kind model.Kind, id string) (*model.Record, error)
	// UpsertRecord creates the record or replaces an existing one with the
	// same kind and ID. Replacing keeps the record's position in ListRecords.
	UpsertRecord(ctx context.Context, rec *model.Record) error
	// RemoveRecord deletes the record, or returns ErrNotFound.
	RemoveRecord(ctx context.Context, kind model.Kind, id string) error
	// ListRecords returns every record of a kind in insertion order.
	ListRecords(ctx context.Context, kind model.Kind) ([]*model.Record, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
