package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailingAmounts(t *testing.T) {
	t.Run("splits trailing run", func(t *testing.T) {
		rest, amounts := trailingAmounts([]string{"01/02/2025", "POS", "MARKET", "150.00", "3,850.00"})
		assert.Equal(t, []string{"01/02/2025", "POS", "MARKET"}, rest)
		assert.Equal(t, []string{"150.00", "3,850.00"}, amounts)
	})

	t.Run("integers are not amounts", func(t *testing.T) {
		rest, amounts := trailingAmounts([]string{"REF", "123456"})
		assert.Len(t, rest, 2)
		assert.Empty(t, amounts)
	})

	t.Run("signed amounts count", func(t *testing.T) {
		_, amounts := trailingAmounts([]string{"X", "-99.50"})
		assert.Equal(t, []string{"-99.50"}, amounts)
	})
}

func TestIsDateToken(t *testing.T) {
	for _, ok := range []string{"01/02/2025", "1/2/25", "01-02-2025", "09.12.2024", "07-Mar-2025", "02NOV25", "2025-04-01"} {
		assert.True(t, isDateToken(ok), ok)
	}
	for _, bad := range []string{"", "POS", "150.00", "2025", "AE120001234"} {
		assert.False(t, isDateToken(bad), bad)
	}
}

func TestKeywordSets(t *testing.T) {
	assert.True(t, withdrawalKeywords.matches("pos-purchase at market"))
	assert.True(t, depositKeywords.matches("Salary Transfer In"))
	assert.True(t, noiseKeywords.matches("OPENING BALANCE"))
	assert.False(t, withdrawalKeywords.matches("grocery store"))
}

func TestMapColumns(t *testing.T) {
	t.Run("split debit credit", func(t *testing.T) {
		cm := mapColumns([]string{"Date", "Narration", "Debit", "Credit", "Balance"})
		require.True(t, cm.usable())
		assert.Equal(t, 0, cm.date)
		assert.Equal(t, 1, cm.description)
		assert.Equal(t, 2, cm.withdrawal)
		assert.Equal(t, 3, cm.deposit)
		assert.Equal(t, 4, cm.balance)
	})

	t.Run("single amount with indicator", func(t *testing.T) {
		cm := mapColumns([]string{"Transaction Date", "Details", "Amount", "Dr/Cr"})
		require.True(t, cm.usable())
		assert.Equal(t, 2, cm.amount)
		assert.Equal(t, 3, cm.indicator)
	})

	t.Run("ocr typo still matches", func(t *testing.T) {
		cm := mapColumns([]string{"Date", "Descripton", "Withdrawl", "Deposit"})
		require.True(t, cm.usable())
		assert.Equal(t, 1, cm.description)
		assert.Equal(t, 2, cm.withdrawal)
	})

	t.Run("no header", func(t *testing.T) {
		cm := mapColumns([]string{"01/02/2025", "POS", "10.00"})
		assert.False(t, cm.usable())
	})
}

func TestIsCurrencyCode(t *testing.T) {
	assert.True(t, isCurrencyCode("USD"))
	assert.True(t, isCurrencyCode("AED"))
	assert.False(t, isCurrencyCode("KFC"))
	assert.False(t, isCurrencyCode("usd"))
	assert.False(t, isCurrencyCode("POS"))
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register("x", ExtractorFunc(extractUniversal))
	assert.Panics(t, func() { r.Register("x", ExtractorFunc(extractUniversal)) })
}

func TestDefaultRegistryCoversCatalog(t *testing.T) {
	r := DefaultRegistry()
	for _, id := range []string{"emirates_nbd", "wio", "rakbank", "adcb", "mashreq", "uab", "baroda", "pluto", "other", "spreadsheet"} {
		_, ok := r.Get(id)
		assert.True(t, ok, id)
	}
}
