// internal/app/store/kv/memory.go
package kvstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store used by tests and single-user tooling.
type Memory struct {
	mu   sync.Mutex
	data map[memoryKey]string
}

type memoryKey struct {
	userID string
	key    string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[memoryKey]string)}
}

// Get implements Store.
func (s *Memory) Get(_ context.Context, userID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[memoryKey{userID, key}]
	return v, ok, nil
}

// Set implements Store.
func (s *Memory) Set(_ context.Context, userID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[memoryKey{userID, key}] = value
	return nil
}

// Delete implements Store.
func (s *Memory) Delete(_ context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, memoryKey{userID, key})
	return nil
}
