package extract

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Header labels the banks print for each canonical field. Matching is
// tolerant: exact, substring for the longer aliases, and a one-edit fuzzy
// allowance for OCR typos like "withdrawl".
var headerAliases = map[Field][]string{
	FieldDate:        {"date", "transaction date", "txn date", "posting date", "value date"},
	FieldDescription: {"description", "narration", "particulars", "details", "transaction details", "remarks"},
	FieldPayee:       {"payee", "merchant", "beneficiary"},
	FieldWithdrawal:  {"withdrawal", "withdrawals", "debit", "debit amount", "paid out", "dr"},
	FieldDeposit:     {"deposit", "deposits", "credit", "credit amount", "paid in", "cr"},
	FieldAmount:      {"amount", "transaction amount"},
	FieldIndicator:   {"type", "dr/cr", "cr/dr"},
	FieldReference:   {"reference", "ref no", "reference number", "cheque no", "cheque number", "transaction id"},
	FieldBalance:     {"balance", "running balance", "closing balance"},
}

// matchHeader reports whether a header cell denotes the given field.
func matchHeader(cell string, field Field) bool {
	cell = strings.ToLower(strings.TrimSpace(stripArabic(cell)))
	if cell == "" {
		return false
	}
	for _, alias := range headerAliases[field] {
		if cell == alias {
			return true
		}
		if len(alias) >= 4 && strings.Contains(cell, alias) {
			return true
		}
		if len(alias) >= 5 && fuzzy.LevenshteinDistance(cell, alias) <= 1 {
			return true
		}
	}
	return false
}

// columnMap holds the column index of each recognized field, -1 when absent.
type columnMap struct {
	date, payee, description          int
	withdrawal, deposit               int
	amount, indicator                 int
	reference, balance                int
}

func newColumnMap() columnMap {
	return columnMap{
		date: -1, payee: -1, description: -1,
		withdrawal: -1, deposit: -1,
		amount: -1, indicator: -1,
		reference: -1, balance: -1,
	}
}

// usable requires a date column and at least one way to read an amount.
func (cm columnMap) usable() bool {
	return cm.date >= 0 && (cm.withdrawal >= 0 || cm.deposit >= 0 || cm.amount >= 0)
}

// mapColumns recognizes a header row. First match wins per field; withdrawal
// and deposit are checked before the generic amount so "debit amount" does
// not land in the amount slot.
func mapColumns(header []string) columnMap {
	cm := newColumnMap()
	for i, cell := range header {
		switch {
		case cm.date < 0 && matchHeader(cell, FieldDate):
			cm.date = i
		case cm.withdrawal < 0 && matchHeader(cell, FieldWithdrawal):
			cm.withdrawal = i
		case cm.deposit < 0 && matchHeader(cell, FieldDeposit):
			cm.deposit = i
		case cm.balance < 0 && matchHeader(cell, FieldBalance):
			cm.balance = i
		case cm.amount < 0 && matchHeader(cell, FieldAmount):
			cm.amount = i
		case cm.indicator < 0 && matchHeader(cell, FieldIndicator):
			cm.indicator = i
		case cm.reference < 0 && matchHeader(cell, FieldReference):
			cm.reference = i
		case cm.payee < 0 && matchHeader(cell, FieldPayee):
			cm.payee = i
		case cm.description < 0 && matchHeader(cell, FieldDescription):
			cm.description = i
		}
	}
	return cm
}

// cell safely indexes a row.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// rowField copies a mapped cell into the raw row when present.
func rowField(raw RawRow, f Field, row []string, i int) {
	if v := cell(row, i); v != "" {
		raw[f] = v
	}
}
