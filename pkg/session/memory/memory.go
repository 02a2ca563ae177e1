// Package memory implements an in-memory session store. In-progress
// orders need no durability, so this is the default backend.
package memory

import (
	"context"
	"sync"

	"mealflow/pkg/order"
)

// Store provides an in-memory implementation of session.Store.
type Store struct {
	mu     sync.RWMutex
	orders map[string]order.Items
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{orders: make(map[string]order.Items)}
}

// Get retrieves a copy of the session's in-progress order.
func (s *Store) Get(ctx context.Context, sessionID string) (order.Items, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.orders[sessionID]
	if !ok {
		return nil, false, nil
	}
	return items.Clone(), true, nil
}

// Put stores a copy of the in-progress order under the session id.
func (s *Store) Put(ctx context.Context, sessionID string, items order.Items) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[sessionID] = items.Clone()
	return nil
}

// Delete removes the session's in-progress order.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, sessionID)
	return nil
}
