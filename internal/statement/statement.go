// Package statement defines the canonical transaction model produced by the
// conversion pipeline, along with the document-level error taxonomy.
package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column headers of the canonical schema, in export order.
const (
	ColumnDate        = "Date"
	ColumnWithdrawals = "Withdrawals"
	ColumnDeposits    = "Deposits"
	ColumnPayee       = "Payee"
	ColumnDescription = "Description"
	ColumnReference   = "Reference Number"
)

// Transaction is one statement line in canonical form. Exactly one of
// Withdrawal and Deposit is non-zero; the normalizer enforces this and drops
// rows where it cannot be established.
type Transaction struct {
	Date            time.Time
	Withdrawal      decimal.Decimal
	Deposit         decimal.Decimal
	Payee           string
	Description     string
	ReferenceNumber string
}

// IsWithdrawal reports whether the transaction moves money out of the account.
func (t Transaction) IsWithdrawal() bool {
	return t.Withdrawal.IsPositive()
}

// Signed returns the transaction amount as a signed delta on the account
// balance: deposits positive, withdrawals negative.
func (t Transaction) Signed() decimal.Decimal {
	return t.Deposit.Sub(t.Withdrawal)
}

// Diagnostic records a row that was dropped or repaired during normalization.
// Diagnostics are informational; they never fail a conversion.
type Diagnostic struct {
	Row     int    // zero-based index into the extractor's raw rows
	Reason  string // human-readable explanation
	RawData string // offending raw value, when one exists
}

// Result is the outcome of a successful conversion. A Result with zero
// transactions and a populated Diagnostics slice is still a success: the
// document was readable, its rows just did not survive normalization.
type Result struct {
	ConversionID string
	BankID       string
	Transactions []Transaction
	Diagnostics  []Diagnostic
	TotalRows    int // raw rows handed to the normalizer
	DroppedRows  int
}
