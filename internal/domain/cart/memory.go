package cart

import (
	"context"
	"sync"
)

// MemoryStore keeps carts in process memory, the way the first revision of
// the storefront kept them in local storage. It copies on both Load and
// Save so no caller can reach the stored lines by reference.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]LineItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]LineItem)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FromItems(s.carts[key]), nil
}

func (s *MemoryStore) Save(_ context.Context, key string, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := c.Items()
	if len(items) == 0 {
		delete(s.carts, key)
		return nil
	}
	s.carts[key] = items
	return nil
}
