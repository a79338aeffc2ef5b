package repositories

import (
	"context"

	"sweetshop/internal/models"
)

// TransactionRepository defines the interface for ledger data access.
type TransactionRepository interface {
	// GetAll returns every entry ordered by date, then by creation time.
	GetAll(ctx context.Context) ([]models.Transaction, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	Create(ctx context.Context, txn *models.Transaction) error
	Update(ctx context.Context, txn *models.Transaction) error
	Delete(ctx context.Context, id string) error
}
