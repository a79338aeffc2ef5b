package ledger

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	transactionsSheet = "Transactions"
	summarySheet      = "Summary"
)

// WriteXLSX renders sum as a workbook with a Transactions sheet listing the
// filtered entries and a Summary sheet with the totals and per-date series.
func WriteXLSX(w io.Writer, sum Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return fmt.Errorf("failed to name transactions sheet: %w", err)
	}
	rows := [][]interface{}{{"Date", "Type", "Category", "Description", "Amount"}}
	for _, r := range sum.Records {
		amount, _ := r.Amount.Float64()
		rows = append(rows, []interface{}{r.Date, string(r.Type), r.Category, r.Description, amount})
	}
	if err := writeRows(f, transactionsSheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	earnings, _ := sum.TotalEarnings.Float64()
	expenses, _ := sum.TotalExpenses.Float64()
	net, _ := sum.NetProfit.Float64()
	summary := [][]interface{}{
		{"Total Earnings", earnings},
		{"Total Expenses", expenses},
		{"Net Profit", net},
		{},
		{"Date", "Earning", "Expense"},
	}
	for _, p := range sum.Series {
		e, _ := p.Earning.Float64()
		x, _ := p.Expense.Float64()
		summary = append(summary, []interface{}{p.Date, e, x})
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
