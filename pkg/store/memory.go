package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps charts in a map. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string]*Chart
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]*Chart)}
}

// Save stores a copy of the chart, assigning an ID if needed.
func (s *MemoryStore) Save(ctx context.Context, c *Chart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	clone := *c
	s.charts[c.ID] = &clone
	return nil
}

// Get retrieves a copy of the chart by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.charts[id]
	if !ok {
		return nil, notFound(id)
	}
	clone := *c
	return &clone, nil
}

// List returns all charts ordered by creation time.
func (s *MemoryStore) List(ctx context.Context) ([]*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	charts := make([]*Chart, 0, len(s.charts))
	for _, c := range s.charts {
		clone := *c
		charts = append(charts, &clone)
	}
	sort.Slice(charts, func(i, j int) bool {
		if charts[i].CreatedAt.Equal(charts[j].CreatedAt) {
			return charts[i].ID < charts[j].ID
		}
		return charts[i].CreatedAt.Before(charts[j].CreatedAt)
	})
	return charts, nil
}

// Delete removes a chart by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.charts[id]; !ok {
		return notFound(id)
	}
	delete(s.charts, id)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
