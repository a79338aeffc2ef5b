package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionEarning TransactionType = "Earning"
	TransactionExpense TransactionType = "Expense"
)

// DateLayout is the calendar date format used by ledger entries.
const DateLayout = "2006-01-02"

// TransactionDraft is a ledger entry as entered by an admin.
type TransactionDraft struct {
	Type        TransactionType `json:"type" gorm:"type:varchar(10);index" validate:"required,oneof=Earning Expense"`
	Description string          `json:"description" validate:"required,max=200"`
	Category    string          `json:"category" gorm:"type:varchar(50);index" validate:"required,max=50"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2)" validate:"gt=0,money"`
	Date        string          `json:"date" gorm:"type:varchar(10);index" validate:"required,datetime=2006-01-02"`
}

// Transaction is a persisted ledger entry.
type Transaction struct {
	ID               string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TransactionDraft `gorm:"embedded"`
	CreatedAt        time.Time `json:"created_at"`
}
