package memory

import (
	"context"
	"sync"

	"github.com/shopmesh/shopmesh/internal/domains/orders/ports"
)

// IdempotencyStore keeps replay records in process memory. Records never
// expire; acceptable for single-node and test use.
type IdempotencyStore struct {
	mu      sync.RWMutex
	records map[string]ports.IdempotencyRecord
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: make(map[string]ports.IdempotencyRecord)}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *IdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[record.Key]; ok && existing.RequestHash != record.RequestHash {
		return nil, ports.ErrIdempotencyConflict
	}
	s.records[record.Key] = record
	return &record, nil
}
