// Package memory provides an in-memory cart store for local
// development (no DATABASE_URL) and tests.
package memory

import (
	"context"
	"sync"

	"github.com/ovenbird/bakehouse/internal/domain/cart"
)

var _ cart.Store = (*CartStore)(nil)

// CartStore keeps carts in a map guarded by a RWMutex. Contents do not
// survive a restart, which is acceptable for the setups it serves.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string][]cart.LineItem
}

// NewCartStore creates an empty in-memory store.
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string][]cart.LineItem)}
}

// Load implements cart.Store. A missing key loads as an empty cart.
func (s *CartStore) Load(_ context.Context, key string) ([]cart.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.carts[key]
	out := make([]cart.LineItem, len(items))
	copy(out, items)
	return out, nil
}

// Save implements cart.Store.
func (s *CartStore) Save(_ context.Context, key string, items []cart.LineItem) error {
	stored := make([]cart.LineItem, len(items))
	copy(stored, items)

	s.mu.Lock()
	s.carts[key] = stored
	s.mu.Unlock()
	return nil
}
