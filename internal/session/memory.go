package session

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps checkpoints in process memory. Suitable for tests and
// single-instance deployments that can tolerate losing checkpoints on
// restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make(json.RawMessage, len(payload))
	copy(cp, payload)
	return cp, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, payload json.RawMessage) error {
	cp := make(json.RawMessage, len(payload))
	copy(cp, payload)
	s.mu.Lock()
	s.data[key] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
