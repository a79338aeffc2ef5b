package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sweetshop/internal/models"

	"github.com/google/uuid"
)

// InMemoryOrderRepository is an in-memory implementation of OrderRepository.
type InMemoryOrderRepository struct {
	orders map[string]models.Order
	ids    []string
	mu     sync.RWMutex
}

// NewInMemoryOrderRepository creates a new instance of InMemoryOrderRepository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders, newest first.
func (r *InMemoryOrderRepository) GetAll(_ context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.ids))
	for i := len(r.ids) - 1; i >= 0; i-- {
		orderList = append(orderList, copyOrder(r.orders[r.ids[i]]))
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *InMemoryOrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	order = copyOrder(order)
	return &order, nil
}

// Create adds a new order.
func (r *InMemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("order with ID %s: %w", order.ID, ErrDuplicate)
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.ID] = copyOrder(*order)
	r.ids = append(r.ids, order.ID)
	return nil
}

// UpdateStatus updates the status of an order and returns the stored record.
func (r *InMemoryOrderRepository) UpdateStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	order = copyOrder(order)
	return &order, nil
}

// copyOrder detaches the items slice so callers cannot mutate stored snapshots.
func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.LineItem(nil), o.Items...)
	return o
}
