package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"sweetshop/internal/models"

	"github.com/google/uuid"
)

// InMemoryTransactionRepository is an in-memory implementation of TransactionRepository.
type InMemoryTransactionRepository struct {
	txns map[string]models.Transaction
	ids  []string
	mu   sync.RWMutex
}

// NewInMemoryTransactionRepository creates a new instance of InMemoryTransactionRepository.
func NewInMemoryTransactionRepository() *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{
		txns: make(map[string]models.Transaction),
	}
}

// GetAll returns all entries ordered by date, then insertion.
func (r *InMemoryTransactionRepository) GetAll(_ context.Context) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Transaction, 0, len(r.ids))
	for _, id := range r.ids {
		list = append(list, r.txns[id])
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date < list[j].Date })
	return list, nil
}

// GetByID returns an entry by its ID.
func (r *InMemoryTransactionRepository) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txn, ok := r.txns[id]
	if !ok {
		return nil, fmt.Errorf("transaction with ID %s: %w", id, ErrNotFound)
	}
	return &txn, nil
}

// Create adds a new entry.
func (r *InMemoryTransactionRepository) Create(_ context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if _, exists := r.txns[txn.ID]; exists {
		return fmt.Errorf("transaction with ID %s: %w", txn.ID, ErrDuplicate)
	}
	txn.CreatedAt = time.Now()
	r.txns[txn.ID] = *txn
	r.ids = append(r.ids, txn.ID)
	return nil
}

// Update replaces an existing entry.
func (r *InMemoryTransactionRepository) Update(_ context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.txns[txn.ID]
	if !ok {
		return fmt.Errorf("transaction with ID %s: %w", txn.ID, ErrNotFound)
	}
	txn.CreatedAt = existing.CreatedAt
	r.txns[txn.ID] = *txn
	return nil
}

// Delete removes an entry by its ID.
func (r *InMemoryTransactionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.txns[id]; !ok {
		return fmt.Errorf("transaction with ID %s: %w", id, ErrNotFound)
	}
	delete(r.txns, id)
	r.ids = removeID(r.ids, id)
	return nil
}
