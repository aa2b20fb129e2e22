// Package memory implements the store.Store interface in process memory.
// It backs the service when no database is configured and is the store used
// by tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/store"
)

type key struct {
	kind model.Kind
	id   string
}

// MemoryStore keeps records in maps guarded by a read/write mutex. Records
// are cloned on the way in and out, so callers never share state with it.
type MemoryStore struct {
	txMu sync.Mutex // serialises transactions

	mu      sync.RWMutex
	records map[key]*model.Record
	order   map[model.Kind][]string
	now     func() time.Time
}

// Compile-time check that MemoryStore implements store.Store.
var _ store.Store = (*MemoryStore)(nil)

// New returns an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		records: make(map[key]*model.Record),
		order:   make(map[model.Kind][]string),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) GetRecord(_ context.Context, kind model.Kind, id string) (*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[key{kind, id}]
	if !ok {
		return nil, store.ErrNotFound
	}
	return r.Clone(), nil
}

func (s *MemoryStore) UpsertRecord(_ context.Context, rec *model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{rec.Kind, rec.ID}
	c := rec.Clone()
	now := s.now()
	if existing, ok := s.records[k]; ok {
		c.CreatedAt = existing.CreatedAt
	} else {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		s.order[rec.Kind] = append(s.order[rec.Kind], rec.ID)
	}
	c.UpdatedAt = now
	s.records[k] = c

	rec.CreatedAt = c.CreatedAt
	rec.UpdatedAt = c.UpdatedAt
	return nil
}

func (s *MemoryStore) RemoveRecord(_ context.Context, kind model.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{kind, id}
	if _, ok := s.records[k]; !ok {
		return store.ErrNotFound
	}
	delete(s.records, k)
	ids := s.order[kind]
	if i := slices.Index(ids, id); i >= 0 {
		s.order[kind] = slices.Delete(ids, i, i+1)
	}
	return nil
}

func (s *MemoryStore) ListRecords(_ context.Context, kind model.Kind) ([]*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order[kind]
	out := make([]*model.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.records[key{kind, id}].Clone())
	}
	return out, nil
}

// RunInTransaction runs fn against the store. If fn fails, every change it
// made is rolled back. Transactions are serialised with each other but not
// with single-call operations.
func (s *MemoryStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	records, order := s.snapshot()
	if err := fn(s); err != nil {
		s.mu.Lock()
		s.records, s.order = records, order
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *MemoryStore) snapshot() (map[key]*model.Record, map[model.Kind][]string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make(map[key]*model.Record, len(s.records))
	for k, r := range s.records {
		records[k] = r.Clone()
	}
	order := make(map[model.Kind][]string, len(s.order))
	for k, ids := range s.order {
		order[k] = slices.Clone(ids)
	}
	return records, order
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
