package services

import (
	"context"
	"sync"

	"sweetshop/internal/cart"
	"sweetshop/internal/models"
	"sweetshop/internal/pricing"
	"sweetshop/internal/repositories"
)

// CartView is the state of a cart returned to clients.
type CartView struct {
	Items  []models.LineItem `json:"items"`
	Totals models.Totals     `json:"totals"`
}

// CartService keeps one cart.Store per cart session. A single lock guards
// the registry and every store in it.
type CartService struct {
	products repositories.ProductRepository
	calc     pricing.Calculator

	mu    sync.Mutex
	carts map[string]*cart.Store
}

// NewCartService creates a new CartService.
func NewCartService(products repositories.ProductRepository, calc pricing.Calculator) *CartService {
	return &CartService{
		products: products,
		calc:     calc,
		carts:    make(map[string]*cart.Store),
	}
}

// store returns the cart for id, creating it when create is set. Callers hold s.mu.
func (s *CartService) store(id string, create bool) *cart.Store {
	st, ok := s.carts[id]
	if !ok && create {
		st = cart.NewStore(s.calc)
		s.carts[id] = st
	}
	return st
}

func (s *CartService) view(st *cart.Store) CartView {
	if st == nil {
		return CartView{Items: []models.LineItem{}, Totals: s.calc.Compute(nil)}
	}
	return CartView{Items: st.Items(), Totals: st.Totals()}
}

// View returns the content of a cart. Unknown ids read as an empty cart.
func (s *CartService) View(cartID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(s.store(cartID, false))
}

// AddItem snapshots the product into the cart.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, qty int) (CartView, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	if !product.Available {
		return CartView{}, ErrProductUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.store(cartID, true)
	st.Add(*product, qty)
	return s.view(st), nil
}

// UpdateItem sets the quantity of a line; quantities below one become one.
func (s *CartService) UpdateItem(cartID, productID string, qty int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.store(cartID, false)
	if st == nil {
		return CartView{}, cart.ErrItemNotFound
	}
	if _, err := st.UpdateQuantity(productID, qty); err != nil {
		return CartView{}, err
	}
	return s.view(st), nil
}

// RemoveItem deletes a line from the cart.
func (s *CartService) RemoveItem(cartID, productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.store(cartID, false)
	if st == nil {
		return CartView{}, cart.ErrItemNotFound
	}
	if err := st.Remove(productID); err != nil {
		return CartView{}, err
	}
	return s.view(st), nil
}

// Clear empties the cart and forgets the session.
func (s *CartService) Clear(cartID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
	return s.view(nil)
}

// Items returns a copy of the lines in a cart.
func (s *CartService) Items(cartID string) []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.store(cartID, false); st != nil {
		return st.Items()
	}
	return nil
}
