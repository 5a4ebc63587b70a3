package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stmtkit/stmtkit/internal/statement"
)

func sampleResult() *statement.Result {
	return &statement.Result{
		ConversionID: "test",
		Transactions: []statement.Transaction{
			{
				Date:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
				Withdrawal:  decimal.NewFromFloat(150.50),
				Description: "POS MARKET",
			},
			{
				Date:            time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
				Deposit:         decimal.NewFromFloat(5000),
				Description:     "SALARY",
				ReferenceNumber: "TRF123",
			},
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(sampleResult())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Date", "Withdrawals", "Deposits", "Payee", "Description", "Reference Number"}, rows[0])
	assert.Equal(t, "01/02/2025", rows[1][0])
	assert.Equal(t, "150.5", rows[1][1])
	assert.Equal(t, "POS MARKET", rows[1][4])
	assert.Equal(t, "5000", rows[2][2])
	assert.Equal(t, "TRF123", rows[2][5])
}

func TestWriteCSV(t *testing.T) {
	data, err := WriteCSV(sampleResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Withdrawals,Deposits,Payee,Description,Reference Number", lines[0])
	assert.Contains(t, lines[1], "01/02/2025")
	assert.Contains(t, lines[1], "150.50")
	assert.Contains(t, lines[2], "5000.00")
}

func TestWriteXLSXEmptyResult(t *testing.T) {
	data, err := WriteXLSX(&statement.Result{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
