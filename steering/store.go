package steering

import (
	"slices"
	"sync"
)

// AgentID is the stable handle of a spawned agent, never reused within a World
type AgentID uint64

// Store is a generic container keyed by agent
// Iteration follows insertion order so ticks are reproducible
type Store[T any] struct {
	mu     sync.RWMutex
	values map[AgentID]T
	ids    []AgentID
}

// NewStore creates an empty store for type T
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		values: make(map[AgentID]T),
		ids:    make([]AgentID, 0, 16),
	}
}

// Set inserts or updates the value for an agent
func (s *Store[T]) Set(id AgentID, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.values[id]; !exists {
		s.ids = append(s.ids, id)
	}
	s.values[id] = val
}

// Get retrieves the value for an agent
func (s *Store[T]) Get(id AgentID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[id]
	return val, ok
}

// Remove deletes an agent, the order of the rest is preserved
func (s *Store[T]) Remove(id AgentID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.values[id]; !exists {
		return false
	}
	delete(s.values, id)
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
	return true
}

// IDs returns all agents in insertion order
func (s *Store[T]) IDs() []AgentID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Count returns number of stored agents
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
