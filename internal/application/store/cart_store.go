package store

import (
	"sync"

	"github.com/garzaro/uniformes-bff/internal/domain/entity"
)

// CartStore accumulates the items a storefront visitor intends to buy.
// Lines are keyed by (product, school); totals are always recomputed from
// the current lines, never cached.
type CartStore struct {
	mu    sync.Mutex
	items []entity.CartItem
}

// NewCartStore creates an empty cart.
func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddItem appends a line or increments the quantity of the matching
// (product, school) line. A non-positive quantity counts as one.
func (s *CartStore) AddItem(item entity.CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key() == item.Key() {
			s.items[i].Quantity += item.Quantity
			return
		}
	}
	s.items = append(s.items, item)
}

// UpdateQuantity sets the quantity of a line. Zero or less removes the
// line; an absent line is a no-op.
func (s *CartStore) UpdateQuantity(productID, schoolID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := productID + "|" + schoolID
	for i := range s.items {
		if s.items[i].Key() == key {
			if quantity <= 0 {
				s.items = append(s.items[:i], s.items[i+1:]...)
			} else {
				s.items[i].Quantity = quantity
			}
			return
		}
	}
}

// RemoveItem deletes a line. Absent lines are a no-op.
func (s *CartStore) RemoveItem(productID, schoolID string) {
	s.UpdateQuantity(productID, schoolID, 0)
}

// Items returns a copy of the current lines in insertion order.
func (s *CartStore) Items() []entity.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems recomputes the total quantity over all lines.
func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice recomputes the total price over all lines.
func (s *CartStore) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Clear empties the cart.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Snapshot returns the serializable form of the cart.
func (s *CartStore) Snapshot() entity.CartSnapshot {
	return entity.CartSnapshot{Items: s.Items()}
}

// Restore replaces the cart contents with a snapshot, dropping lines that
// are no longer well formed.
func (s *CartStore) Restore(snap entity.CartSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.items[:0]
	for _, item := range snap.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			continue
		}
		s.items = append(s.items, item)
	}
}
