package ledger_test

import (
	"bytes"
	"testing"

	"sweetshop/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	sum := ledger.Aggregate(sampleLedger(), ledger.Filter{Month: "2025-04"})

	var buf bytes.Buffer
	require.NoError(t, ledger.WriteXLSX(&buf, sum))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Transactions", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Date", "Type", "Category", "Description", "Amount"}, rows[0])
	assert.Equal(t, "2025-04-01", rows[1][0])
	assert.Equal(t, "Earning", rows[1][1])
	assert.Equal(t, "5000", rows[1][4])

	net, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "5250.51", net)

	header, err := f.GetCellValue("Summary", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)
	firstDate, err := f.GetCellValue("Summary", "A6")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", firstDate)
}
