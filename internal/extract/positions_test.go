package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stmtkit/stmtkit/internal/loader"
)

func TestExtractDIB(t *testing.T) {
	words := []loader.Word{
		{X: 20, Y: 100, W: 30, Text: "Date"},
		{X: 100, Y: 100, W: 70, Text: "Description"},
		{X: 300, Y: 100, W: 40, Text: "Debit"},
		{X: 380, Y: 100, W: 40, Text: "Credit"},
		{X: 460, Y: 100, W: 50, Text: "Balance"},

		{X: 18, Y: 120, W: 60, Text: "01/02/2025"},
		{X: 150, Y: 120, W: 60, Text: "SALAM"},
		{X: 215, Y: 120, W: 60, Text: "FINANCE"},
		{X: 310, Y: 120, W: 40, Text: "750.00"},
		{X: 465, Y: 120, W: 50, Text: "9,250.00"},
	}
	doc := loader.NewDocument(loader.KindPDF, loader.NewWordPage(words...))

	rows, err := extractDIB(doc)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "01/02/2025", rows[0][FieldDate])
	assert.Equal(t, "750.00", rows[0][FieldWithdrawal])
	assert.Equal(t, "SALAM FINANCE", rows[0][FieldDescription])
	assert.Equal(t, "9,250.00", rows[0][FieldBalance])
}

func TestExtractBaroda(t *testing.T) {
	words := []loader.Word{
		{X: 10, Y: 120, W: 60, Text: "01/02/2025"},
		{X: 90, Y: 120, W: 80, Text: "NEFT"},
		{X: 175, Y: 120, W: 80, Text: "INWARD"},
		{X: 430, Y: 120, W: 40, Text: "0.00"},
		{X: 490, Y: 120, W: 50, Text: "2,000.00"},
		{X: 570, Y: 120, W: 50, Text: "12,000.00"},
		// zero-only artifact row
		{X: 10, Y: 140, W: 60, Text: "01/02/2025"},
		{X: 90, Y: 140, W: 80, Text: "LEDGER"},
		{X: 430, Y: 140, W: 40, Text: "0.00"},
		{X: 490, Y: 140, W: 40, Text: "0.00"},
	}
	doc := loader.NewDocument(loader.KindPDF, loader.NewWordPage(words...))

	rows, err := extractBaroda(doc)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2,000.00", rows[0][FieldDeposit])
	assert.Equal(t, "NEFT INWARD", rows[0][FieldDescription])
	_, hasWithdrawal := rows[0][FieldWithdrawal]
	assert.False(t, hasWithdrawal)
}

func TestExtractUAB(t *testing.T) {
	words := []loader.Word{
		{X: 300, Y: 100, W: 40, Text: "مدين"},
		{X: 400, Y: 100, W: 40, Text: "دائن"},
		{X: 500, Y: 100, W: 50, Text: "الرصيد"},

		{X: 20, Y: 120, W: 60, Text: "01.02.2025"},
		{X: 100, Y: 120, W: 50, Text: "POS"},
		{X: 155, Y: 120, W: 60, Text: "شراء"},
		{X: 220, Y: 120, W: 60, Text: "MARKET"},
		{X: 180, Y: 121, W: 60, Text: "02.02.2025"},
	}
	// keep description words left of the value date in reading order
	words[7].X = 260
	doc := loader.NewDocument(loader.KindPDF, loader.NewWordPage(append(words,
		loader.Word{X: 310, Y: 120, W: 40, Text: "150.00"},
		loader.Word{X: 505, Y: 120, W: 50, Text: "4,850.00"},
	)...))

	rows, err := extractUAB(doc)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "01.02.2025", rows[0][FieldDate])
	assert.Equal(t, "POS MARKET", rows[0][FieldDescription])
	assert.Equal(t, "150.00", rows[0][FieldWithdrawal])
	assert.Equal(t, "4,850.00", rows[0][FieldBalance])
}

func TestExtractMashreq(t *testing.T) {
	t.Run("headered table with signed amount", func(t *testing.T) {
		doc := loader.NewDocument(loader.KindPDF, loader.NewTablePage([][]string{
			{"Date", "Details", "Amount", "Balance"},
			{"01/02/2025", "POS CARREFOUR", "-150.00", "3,850.00"},
			{"02/02/2025", "SALARY", "+5,000.00", "8,850.00"},
		}))
		rows, err := extractMashreq(doc)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "150.00", rows[0][FieldWithdrawal])
		assert.Equal(t, "5,000.00", rows[1][FieldDeposit])
	})

	t.Run("headerless debit credit balance", func(t *testing.T) {
		doc := loader.NewDocument(loader.KindPDF, loader.NewTablePage([][]string{
			{"01/02/2025", "POS CARREFOUR", "150.00", "", "3,850.00"},
		}))
		rows, err := extractMashreq(doc)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		// two figures: signed-resolution defers to the normalizer
		assert.Equal(t, "150.00", rows[0][FieldAmount])
		assert.Equal(t, "3,850.00", rows[0][FieldBalance])
	})
}

func TestExtractMashreqV2(t *testing.T) {
	doc := loader.NewDocument(loader.KindPDF, loader.NewTextPage(
		"2025-02-01 099FBCNAED OUTWARD TT 1,200.00 8,800.00",
		"2025-02-02 VALUE ADDED TAX 099FBCNAED 9.00 8,791.00",
		"2025-02-03 INCOMING FUNDS 3,000.00 11,791.00",
	))

	rows, err := extractMashreqV2(doc)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "OUTWARD TT", rows[0][FieldDescription])
	assert.Equal(t, "9.00", rows[1][FieldWithdrawal])
	assert.Equal(t, "3,000.00", rows[2][FieldDeposit])
}
