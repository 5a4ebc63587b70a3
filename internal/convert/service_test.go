package convert

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stmtkit/stmtkit/internal/bank"
	"github.com/stmtkit/stmtkit/internal/extract"
	"github.com/stmtkit/stmtkit/internal/statement"
)

func newTestService() *Service {
	return NewService(slog.Default(), bank.Default(), extract.DefaultRegistry())
}

func TestConvert(t *testing.T) {
	t.Run("unknown bank", func(t *testing.T) {
		_, err := newTestService().Convert(context.Background(), "no_such_bank", []byte("Date,Debit\n"), "")
		assert.ErrorIs(t, err, statement.ErrUnknownBank)
	})

	t.Run("empty upload", func(t *testing.T) {
		_, err := newTestService().Convert(context.Background(), "spreadsheet", nil, "")
		assert.ErrorIs(t, err, statement.ErrUnreadableDocument)
	})

	t.Run("csv end to end", func(t *testing.T) {
		csv := "Date,Narration,Debit,Credit,Balance\n" +
			"01/02/2025,POS MARKET,150.00,,3850.00\n" +
			"02/02/2025,SALARY,,5000.00,8850.00\n" +
			"99/99/2025,BROKEN,1.00,,\n"

		res, err := newTestService().Convert(context.Background(), "spreadsheet", []byte(csv), "")
		require.NoError(t, err)
		require.Len(t, res.Transactions, 2)
		assert.NotEmpty(t, res.ConversionID)
		assert.Equal(t, "spreadsheet", res.BankID)
		assert.Equal(t, 3, res.TotalRows)
		assert.Equal(t, 1, res.DroppedRows)
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, 2, res.Diagnostics[0].Row)

		tx := res.Transactions[0]
		assert.True(t, tx.IsWithdrawal())
		assert.Equal(t, "POS MARKET", tx.Description)
	})

	t.Run("format mismatch for wrong bank", func(t *testing.T) {
		csv := "no statement content here\njust,a,csv\n"
		_, err := newTestService().Convert(context.Background(), "spreadsheet", []byte(csv), "")
		assert.ErrorIs(t, err, statement.ErrFormatMismatch)
		assert.NotEmpty(t, statement.Hint(err))
	})

	t.Run("other banks never mismatches", func(t *testing.T) {
		csv := "nothing,recognizable\nhere,either\n"
		res, err := newTestService().Convert(context.Background(), "other", []byte(csv), "")
		require.NoError(t, err)
		assert.Empty(t, res.Transactions)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newTestService().Convert(ctx, "spreadsheet", []byte("Date,Debit\n01/02/2025,1.00\n"), "")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "ok", outcomeLabel(nil))
	assert.Equal(t, "authentication", outcomeLabel(statement.ErrAuthentication))
	assert.Equal(t, "format_mismatch", outcomeLabel(statement.ErrFormatMismatch))
	assert.Equal(t, "error", outcomeLabel(context.Canceled))
}
