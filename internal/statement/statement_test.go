package statement

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionSigned(t *testing.T) {
	t.Run("deposit is positive", func(t *testing.T) {
		tx := Transaction{Deposit: decimal.NewFromFloat(150.25)}
		assert.True(t, tx.Signed().Equal(decimal.NewFromFloat(150.25)))
		assert.False(t, tx.IsWithdrawal())
	})

	t.Run("withdrawal is negative", func(t *testing.T) {
		tx := Transaction{Withdrawal: decimal.NewFromFloat(42.10)}
		assert.True(t, tx.Signed().Equal(decimal.NewFromFloat(-42.10)))
		assert.True(t, tx.IsWithdrawal())
	})
}

func TestHint(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{"unknown bank", ErrUnknownBank, true},
		{"authentication", ErrAuthentication, true},
		{"unreadable", ErrUnreadableDocument, true},
		{"format mismatch", ErrFormatMismatch, true},
		{"wrapped still hints", fmt.Errorf("open pdf: %w", ErrAuthentication), true},
		{"unrelated", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := Hint(tt.err)
			if tt.wantHint {
				assert.NotEmpty(t, hint)
			} else {
				assert.Empty(t, hint)
			}
		})
	}
}
