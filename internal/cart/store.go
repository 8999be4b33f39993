package cart

import (
	"sync"

	"salepoint/internal/catalog"
)

// Store holds the single operator's cart for one checkout session. At most
// one line exists per product id; every mutation either succeeds or leaves
// the cart untouched. The mutex guards against double-tap re-entry from the
// UI, not cross-session sharing.
type Store struct {
	mu    sync.Mutex
	lines map[int64]*Line
	order []int64
}

func NewStore() *Store {
	return &Store{lines: make(map[int64]*Line)}
}

// AddOrSetQuantity inserts a line for the product or, if one already exists,
// replaces its quantity. The unit price is captured on first insert and kept
// afterwards; the stock ceiling is refreshed from the snapshot.
func (s *Store) AddOrSetQuantity(p catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if quantity > p.StockQuantity {
		return ErrInsufficientStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ln, ok := s.lines[p.ID]; ok {
		ln.Quantity = quantity
		ln.Stock = p.StockQuantity
		return nil
	}

	s.lines[p.ID] = &Line{
		ProductID: p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		UnitPrice: p.UnitPrice,
		Quantity:  quantity,
		Stock:     p.StockQuantity,
	}
	s.order = append(s.order, p.ID)
	return nil
}

// Adjust changes an existing line's quantity by delta. A result above the
// stock ceiling is rejected with the quantity unchanged; a result of zero or
// below removes the line entirely.
func (s *Store) Adjust(productID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ln, ok := s.lines[productID]
	if !ok {
		return ErrLineNotFound
	}

	next := ln.Quantity + delta
	if next <= 0 {
		s.removeLocked(productID)
		return nil
	}
	if next > ln.Stock {
		return ErrInsufficientStock
	}

	ln.Quantity = next
	return nil
}

// Remove deletes the line if present; no-op otherwise.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Store) removeLocked(productID int64) {
	if _, ok := s.lines[productID]; !ok {
		return
	}
	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart. Invoked after a fully successful checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[int64]*Line)
	s.order = nil
}

// Lines returns a copy of the cart in insertion order. The order only
// matters for display; totals are order-independent.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.lines[id])
	}
	return out
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}
