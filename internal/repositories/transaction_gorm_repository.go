package repositories

import (
	"context"
	"errors"
	"fmt"

	"sweetshop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var transactionColumns = []string{"type", "description", "category", "amount", "date"}

// GORMTransactionRepository is a GORM implementation of TransactionRepository.
type GORMTransactionRepository struct {
	db *gorm.DB
}

// NewGORMTransactionRepository creates a new instance of GORMTransactionRepository.
func NewGORMTransactionRepository(db *gorm.DB) *GORMTransactionRepository {
	return &GORMTransactionRepository{db: db}
}

// GetAll retrieves all entries ordered by date, then creation time.
func (r *GORMTransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := r.db.WithContext(ctx).Order("date asc").Order("created_at asc").Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	return txns, nil
}

// GetByID retrieves one entry.
func (r *GORMTransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction by ID %s: %w", id, err)
	}
	return &txn, nil
}

// Create inserts a new entry.
func (r *GORMTransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// Update rewrites the editable fields of an entry.
func (r *GORMTransactionRepository) Update(ctx context.Context, txn *models.Transaction) error {
	res := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", txn.ID).
		Select(transactionColumns).
		Updates(txn)
	if res.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("transaction with ID %s: %w", txn.ID, ErrNotFound)
	}
	stored, err := r.GetByID(ctx, txn.ID)
	if err != nil {
		return err
	}
	*txn = *stored
	return nil
}

// Delete removes an entry.
func (r *GORMTransactionRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("transaction with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
