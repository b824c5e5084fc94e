package design

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps designs in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	designs map[string]*Design
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{designs: make(map[string]*Design)}
}

func (s *MemoryStore) Save(_ context.Context, d *Design) error {
	if err := validate(d); err != nil {
		return err
	}
	cp := *d
	cp.Data = append([]byte(nil), d.Data...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.designs[d.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Design, error) {
	s.mu.RLock()
	d, ok := s.designs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	if d.IsExpired() {
		s.mu.Lock()
		delete(s.designs, id)
		s.mu.Unlock()
		return nil, expired(id)
	}
	cp := *d
	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.designs, id)
	return nil
}

func (s *MemoryStore) Cleanup(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, d := range s.designs {
		if now.After(d.ExpiresAt) {
			delete(s.designs, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored designs, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.designs)
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
