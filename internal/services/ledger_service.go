package services

import (
	"context"
	"io"

	"sweetshop/internal/ledger"
	"sweetshop/internal/models"
	"sweetshop/internal/repositories"
)

// LedgerService manages earning and expense entries.
type LedgerService struct {
	repo repositories.TransactionRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repo repositories.TransactionRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

// ListTransactions returns every entry, ordered by date.
func (s *LedgerService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.repo.GetAll(ctx)
}

// GetTransaction returns a single entry by its ID.
func (s *LedgerService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateTransaction records a new entry.
func (s *LedgerService) CreateTransaction(ctx context.Context, draft models.TransactionDraft) (*models.Transaction, error) {
	txn := &models.Transaction{TransactionDraft: draft}
	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// UpdateTransaction replaces the editable fields of an entry and returns
// the stored result.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id string, draft models.TransactionDraft) (*models.Transaction, error) {
	if err := s.repo.Update(ctx, &models.Transaction{ID: id, TransactionDraft: draft}); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// DeleteTransaction removes an entry.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Summary aggregates the entries matching f.
func (s *LedgerService) Summary(ctx context.Context, f ledger.Filter) (ledger.Summary, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Aggregate(records, f), nil
}

// Export writes the summary of the entries matching f as an XLSX workbook.
func (s *LedgerService) Export(ctx context.Context, w io.Writer, f ledger.Filter) error {
	sum, err := s.Summary(ctx, f)
	if err != nil {
		return err
	}
	return ledger.WriteXLSX(w, sum)
}
