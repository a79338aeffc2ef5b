// Package cart holds the per-session shopping cart.
package cart

import (
	"errors"
	"fmt"

	"sweetshop/internal/models"
	"sweetshop/internal/pricing"
)

// ErrItemNotFound is returned when a line is addressed by an unknown product ID.
var ErrItemNotFound = errors.New("cart item not found")

// Store is a keyed collection of line items. A Store has a single owner and
// is not safe for concurrent use.
type Store struct {
	calc  pricing.Calculator
	order []string
	lines map[string]*models.LineItem
}

// NewStore returns an empty cart that prices itself with calc.
func NewStore(calc pricing.Calculator) *Store {
	return &Store{
		calc:  calc,
		lines: make(map[string]*models.LineItem),
	}
}

// Add puts qty units of product in the cart, incrementing an existing line.
// Quantities below 1 count as 1.
func (s *Store) Add(product models.Product, qty int) models.LineItem {
	if qty < 1 {
		qty = 1
	}
	if line, ok := s.lines[product.ID]; ok {
		line.Quantity += qty
		return *line
	}
	line := &models.LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  qty,
	}
	s.lines[product.ID] = line
	s.order = append(s.order, product.ID)
	return *line
}

// UpdateQuantity sets the quantity of a line, clamped to a minimum of 1.
func (s *Store) UpdateQuantity(productID string, qty int) (models.LineItem, error) {
	line, ok := s.lines[productID]
	if !ok {
		return models.LineItem{}, fmt.Errorf("product %s: %w", productID, ErrItemNotFound)
	}
	if qty < 1 {
		qty = 1
	}
	line.Quantity = qty
	return *line, nil
}

// Remove deletes a line.
func (s *Store) Remove(productID string) error {
	if _, ok := s.lines[productID]; !ok {
		return fmt.Errorf("product %s: %w", productID, ErrItemNotFound)
	}
	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.order = nil
	s.lines = make(map[string]*models.LineItem)
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []models.LineItem {
	items := make([]models.LineItem, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, *s.lines[id])
	}
	return items
}

// Len returns the number of distinct lines.
func (s *Store) Len() int { return len(s.order) }

// Totals prices the current lines.
func (s *Store) Totals() models.Totals {
	return s.calc.Compute(s.Items())
}
