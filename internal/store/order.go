package store

import (
	"sync"

	"tradesim/internal/domain"
)

// OrderStore is a thread-safe in-memory store for one session's orders,
// with a primary index by order id and a secondary index by owner.
// Orders are never physically removed: executed and cancelled orders stay
// queryable for the session's lifetime.
type OrderStore struct {
	mu          sync.RWMutex
	orders      map[string]*domain.Order
	ownerOrders map[domain.Owner][]*domain.Order // owner → orders (append-only)
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:      make(map[string]*domain.Order),
		ownerOrders: make(map[domain.Owner][]*domain.Order),
	}
}

// Create adds an order to the store and appends it to the
// owner's secondary index.
func (s *OrderStore) Create(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.ID] = o
	s.ownerOrders[o.Owner] = append(s.ownerOrders[o.Owner], o)
}

// Get retrieves an order by id. It returns domain.ErrOrderNotFound if the
// order does not exist.
func (s *OrderStore) Get(id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// ListByOwner returns all orders for an owner in chronological order,
// regardless of status. Returns an empty slice if the owner has no orders.
func (s *OrderStore) ListByOwner(owner domain.Owner) []*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.ownerOrders[owner]
	result := make([]*domain.Order, len(all))
	copy(result, all)
	return result
}

// Count returns the total number of orders ever created in the session.
func (s *OrderStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
