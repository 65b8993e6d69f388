package store

import (
	"context"
	"sync"

	"medtrust/internal/patient"
	"medtrust/pkg/platform/sentinel"
)

// InMemoryStore holds records for local runs and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]patient.Record
}

func NewInMemoryStore(records ...patient.Record) *InMemoryStore {
	s := &InMemoryStore{records: make(map[string]patient.Record, len(records))}
	for _, r := range records {
		s.Put(r)
	}
	return s
}

// Put stores r under its ID, deriving the ID from the name when empty.
func (s *InMemoryStore) Put(r patient.Record) {
	if r.ID == "" {
		r.ID = patient.ID(r.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = r
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*patient.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

func (s *InMemoryStore) Upsert(_ context.Context, r patient.Record) error {
	s.Put(r)
	return nil
}
