package repositories

import (
	"context"

	"sweetshop/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// never deleted and only their status changes after creation.
type OrderRepository interface {
	// GetAll returns every order, newest first.
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}
