package orders

import (
	"context"
	"sync"
)

// MemoryStore is the order log of the local-persistence revision: an
// in-process append-only slice. Orders are copied on the way in and out so
// the stored snapshots stay unreachable by reference.
type MemoryStore struct {
	mu     sync.RWMutex
	orders []Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *o
	stored.Items = cloneItems(o.Items)
	s.orders = append(s.orders, stored)
	return nil
}

func (s *MemoryStore) GetByNumber(_ context.Context, number string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.orders {
		if s.orders[i].OrderNumber == number {
			out := s.orders[i]
			out.Items = cloneItems(out.Items)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListByKey(_ context.Context, key string, limit, offset int) ([]Order, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []Order
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].CartKey == key {
			matched = append(matched, s.orders[i])
		}
	}
	return page(matched, limit, offset)
}

func (s *MemoryStore) ListAll(_ context.Context, limit, offset int) ([]Order, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]Order, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		all = append(all, s.orders[i])
	}
	return page(all, limit, offset)
}

func page(orders []Order, limit, offset int) ([]Order, int, error) {
	total := len(orders)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	out := make([]Order, end-offset)
	for i, o := range orders[offset:end] {
		o.Items = cloneItems(o.Items)
		out[i] = o
	}
	return out, total, nil
}
