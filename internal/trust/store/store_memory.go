package store

import (
	"context"
	"sync"
	"time"

	"medtrust/pkg/platform/sentinel"
)

// Record is a stored score and when it last changed.
type Record struct {
	Score      int
	LastUpdate time.Time
}

// InMemoryStore keeps scores for the lifetime of the process. Identities are
// created implicitly on first Set.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Record)}
}

func (s *InMemoryStore) Get(_ context.Context, identity string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[identity]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	return rec.Score, nil
}

func (s *InMemoryStore) Set(_ context.Context, identity string, score int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[identity] = Record{Score: score, LastUpdate: at}
	return nil
}

// Record returns the full stored record.
func (s *InMemoryStore) Record(identity string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[identity]
	return rec, ok
}

// Len reports how many identities have a stored score.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
