package export

import (
	"github.com/gocarina/gocsv"

	"github.com/stmtkit/stmtkit/internal/statement"
)

// csvRow mirrors the canonical column set for the CSV download option.
type csvRow struct {
	Date            string `csv:"Date"`
	Withdrawals     string `csv:"Withdrawals"`
	Deposits        string `csv:"Deposits"`
	Payee           string `csv:"Payee"`
	Description     string `csv:"Description"`
	ReferenceNumber string `csv:"Reference Number"`
}

// WriteCSV renders the result as canonical CSV.
func WriteCSV(res *statement.Result) ([]byte, error) {
	rows := make([]*csvRow, 0, len(res.Transactions))
	for _, tx := range res.Transactions {
		row := &csvRow{
			Date:            tx.Date.Format("02/01/2006"),
			Payee:           tx.Payee,
			Description:     tx.Description,
			ReferenceNumber: tx.ReferenceNumber,
		}
		if !tx.Withdrawal.IsZero() {
			row.Withdrawals = tx.Withdrawal.StringFixed(2)
		}
		if !tx.Deposit.IsZero() {
			row.Deposits = tx.Deposit.StringFixed(2)
		}
		rows = append(rows, row)
	}
	return gocsv.MarshalBytes(&rows)
}
