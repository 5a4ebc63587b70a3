package extract

import (
	"strings"

	"github.com/stmtkit/stmtkit/internal/loader"
)

// headerSearchDepth bounds how deep into a sheet the header row may sit;
// banks love stacking logos and account summaries above it.
const headerSearchDepth = 15

// extractSpreadsheet reads XLSX and CSV exports. Each sheet is scanned for a
// recognizable header row, then rows below it are read through the column
// map. Three amount dialects are handled: split withdrawal/deposit columns,
// a single amount with a CR/DR indicator column, and a single signed amount.
func extractSpreadsheet(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0

	err := eachPage(doc, func(p *loader.Page) error {
		sheet := p.Rows()
		headerIdx, cm := findHeaderRow(sheet)
		if headerIdx < 0 {
			return nil
		}
		hits++

		for _, tr := range sheet[headerIdx+1:] {
			date := cell(tr, cm.date)
			if date == "" || !looksLikeDate(date) {
				continue
			}
			raw := RawRow{FieldDate: date}
			rowField(raw, FieldDescription, tr, cm.description)
			rowField(raw, FieldPayee, tr, cm.payee)
			rowField(raw, FieldReference, tr, cm.reference)
			rowField(raw, FieldBalance, tr, cm.balance)

			switch {
			case cm.withdrawal >= 0 || cm.deposit >= 0:
				rowField(raw, FieldWithdrawal, tr, cm.withdrawal)
				rowField(raw, FieldDeposit, tr, cm.deposit)
			case cm.amount >= 0 && cm.indicator >= 0:
				rowField(raw, FieldAmount, tr, cm.amount)
				rowField(raw, FieldIndicator, tr, cm.indicator)
			case cm.amount >= 0:
				resolveSignedCell(raw, cell(tr, cm.amount))
			}
			rows = append(rows, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hits == 0 {
		return nil, mismatch("spreadsheet header")
	}
	return rows, nil
}

// findHeaderRow scores the first rows of a sheet and returns the first one
// that maps to a usable column set.
func findHeaderRow(sheet [][]string) (int, columnMap) {
	depth := len(sheet)
	if depth > headerSearchDepth {
		depth = headerSearchDepth
	}
	for i := 0; i < depth; i++ {
		if cm := mapColumns(sheet[i]); cm.usable() {
			return i, cm
		}
	}
	return -1, newColumnMap()
}

// looksLikeDate accepts both the token shapes PDFs print and the looser
// spellings spreadsheets hold, like "2 Jan 2025" or "Jan 2, 2025".
func looksLikeDate(s string) bool {
	s = strings.TrimSpace(s)
	if isDateToken(s) {
		return true
	}
	fields := strings.Fields(s)
	if len(fields) < 2 || len(fields) > 3 {
		return false
	}
	hasDigit := false
	for _, f := range fields {
		f = strings.TrimSuffix(f, ",")
		switch {
		case allDigits(f):
			hasDigit = true
		case monthNameRe.MatchString(f) || isMonthWord(f):
		default:
			return false
		}
	}
	return hasDigit
}

var longMonths = map[string]bool{
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
}

func isMonthWord(s string) bool {
	return longMonths[strings.ToLower(s)]
}
