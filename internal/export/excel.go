// Package export renders conversion results for download.
package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/stmtkit/stmtkit/internal/statement"
)

const sheetName = "Transactions"

var header = []string{
	statement.ColumnDate,
	statement.ColumnWithdrawals,
	statement.ColumnDeposits,
	statement.ColumnPayee,
	statement.ColumnDescription,
	statement.ColumnReference,
}

// WriteXLSX renders the canonical six-column workbook.
func WriteXLSX(res *statement.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheetName, "A1", "F1", boldStyle)
	}

	for i, tx := range res.Transactions {
		row := i + 2
		values := []any{
			tx.Date.Format("02/01/2006"),
			amountCell(tx.Withdrawal),
			amountCell(tx.Deposit),
			tx.Payee,
			tx.Description,
			tx.ReferenceNumber,
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 12)
	_ = f.SetColWidth(sheetName, "B", "C", 14)
	_ = f.SetColWidth(sheetName, "D", "E", 40)
	_ = f.SetColWidth(sheetName, "F", "F", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// amountCell leaves zero-side cells empty rather than writing 0.00.
func amountCell(v decimal.Decimal) any {
	if v.IsZero() {
		return nil
	}
	return v.InexactFloat64()
}
