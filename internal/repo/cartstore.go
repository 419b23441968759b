package repo

import (
	"sync"

	"github.com/ArtemGolubev/medshop-service/internal/entities"
)

// CartStore keeps one cart per customer. Carts live in memory only:
// the session-scoped working set is not durable state, an order is.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*entities.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*entities.Cart)}
}

// Cart returns a copy of the customer's cart; a missing cart reads as
// empty.
func (s *CartStore) Cart(customerID string) entities.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[customerID]
	if !ok {
		return entities.Cart{}
	}
	cp := entities.Cart{Lines: make([]entities.CartLine, len(c.Lines))}
	copy(cp.Lines, c.Lines)
	return cp
}

// Update runs fn against the customer's live cart under the store
// lock, creating the cart on first use.
func (s *CartStore) Update(customerID string, fn func(c *entities.Cart)) entities.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[customerID]
	if !ok {
		c = &entities.Cart{}
		s.carts[customerID] = c
	}
	fn(c)
	cp := entities.Cart{Lines: make([]entities.CartLine, len(c.Lines))}
	copy(cp.Lines, c.Lines)
	return cp
}

// Clear empties the customer's cart.
func (s *CartStore) Clear(customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, customerID)
}
