// Package ledger summarises earning and expense entries for the back-office.
package ledger

import (
	"strings"

	"sweetshop/internal/models"

	"github.com/shopspring/decimal"
)

// Filter narrows the entries taken into a summary. Empty fields are ignored.
// Date matches a full YYYY-MM-DD date, Month a YYYY-MM prefix.
type Filter struct {
	Type     models.TransactionType `query:"type" validate:"omitempty,oneof=Earning Expense"`
	Category string                 `query:"category"`
	Date     string                 `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Month    string                 `query:"month" validate:"omitempty,datetime=2006-01"`
}

// SeriesPoint holds the per-type sums for one date.
type SeriesPoint struct {
	Date    string          `json:"date"`
	Earning decimal.Decimal `json:"earning"`
	Expense decimal.Decimal `json:"expense"`
}

// Summary is the aggregated view of a filtered ledger.
type Summary struct {
	TotalEarnings decimal.Decimal      `json:"total_earnings"`
	TotalExpenses decimal.Decimal      `json:"total_expenses"`
	NetProfit     decimal.Decimal      `json:"net_profit"`
	Count         int                  `json:"count"`
	Series        []SeriesPoint        `json:"series"`
	Records       []models.Transaction `json:"records"`
}

// Matches reports whether t passes every clause of f.
func (f Filter) Matches(t models.Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.Date != "" && t.Date != f.Date {
		return false
	}
	if f.Month != "" && !strings.HasPrefix(t.Date, f.Month+"-") {
		return false
	}
	return true
}

// Aggregate filters records and sums them overall and per date. Series
// points are ordered by the first appearance of each date in records.
func Aggregate(records []models.Transaction, f Filter) Summary {
	sum := Summary{
		TotalEarnings: decimal.Zero,
		TotalExpenses: decimal.Zero,
		Series:        []SeriesPoint{},
		Records:       []models.Transaction{},
	}
	index := make(map[string]int)

	for _, r := range records {
		if !f.Matches(r) {
			continue
		}
		sum.Records = append(sum.Records, r)

		i, ok := index[r.Date]
		if !ok {
			i = len(sum.Series)
			index[r.Date] = i
			sum.Series = append(sum.Series, SeriesPoint{Date: r.Date, Earning: decimal.Zero, Expense: decimal.Zero})
		}

		switch r.Type {
		case models.TransactionEarning:
			sum.TotalEarnings = sum.TotalEarnings.Add(r.Amount)
			sum.Series[i].Earning = sum.Series[i].Earning.Add(r.Amount)
		case models.TransactionExpense:
			sum.TotalExpenses = sum.TotalExpenses.Add(r.Amount)
			sum.Series[i].Expense = sum.Series[i].Expense.Add(r.Amount)
		}
	}

	sum.Count = len(sum.Records)
	sum.NetProfit = sum.TotalEarnings.Sub(sum.TotalExpenses)
	return sum
}
