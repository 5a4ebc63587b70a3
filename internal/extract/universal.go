package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stmtkit/stmtkit/internal/loader"
)

// extractUniversal is the fallback for banks without a dedicated layout. It
// applies the heuristics the dedicated extractors specialize: a leading date
// opens a row (a second date, as FAB prints, is skipped), amounts trail, and
// polarity is taken from the sign, cue words, or the balance trend. Unlike
// the dedicated extractors it never reports a format mismatch; a document
// with no recognizable rows just converts to an empty statement.
func extractUniversal(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	var prevBalance decimal.Decimal
	havePrev := false

	err := eachPage(doc, func(p *loader.Page) error {
		// A ruled table is a stronger signal than flowed text.
		tabled := false
		for _, table := range p.Tables() {
			cm := newColumnMap()
			for _, tr := range table {
				if !cm.usable() {
					cm = mapColumns(tr)
					continue
				}
				if !isDateToken(cell(tr, cm.date)) {
					continue
				}
				tabled = true
				raw := RawRow{FieldDate: cell(tr, cm.date)}
				rowField(raw, FieldDescription, tr, cm.description)
				rowField(raw, FieldPayee, tr, cm.payee)
				rowField(raw, FieldReference, tr, cm.reference)
				rowField(raw, FieldBalance, tr, cm.balance)
				if cm.amount >= 0 {
					resolveSignedCell(raw, cell(tr, cm.amount))
				} else {
					rowField(raw, FieldWithdrawal, tr, cm.withdrawal)
					rowField(raw, FieldDeposit, tr, cm.deposit)
				}
				rows = append(rows, raw)
			}
		}
		if tabled {
			return nil
		}

		for _, line := range p.Lines() {
			fields := strings.Fields(line)
			if len(fields) < 2 || !isDateToken(fields[0]) || noiseKeywords.matches(line) {
				continue
			}
			rest, amounts := trailingAmounts(fields)
			if len(amounts) == 0 {
				continue
			}

			descStart := 1
			if len(rest) > 1 && isDateToken(rest[1]) {
				descStart = 2
			}
			desc := joinFields(rest[descStart:])
			raw := RawRow{FieldDate: fields[0], FieldDescription: desc}

			// The moved amount is the second-to-last figure when a balance
			// trails it. A printed debit/credit/balance triple can carry a
			// 0.00 on the idle side; the movement then sits one slot earlier.
			amount := amounts[0]
			var balance decimal.Decimal
			balOK := false
			if len(amounts) > 1 {
				raw[FieldBalance] = amounts[len(amounts)-1]
				balance, balOK = parseDecimalTok(amounts[len(amounts)-1])
				amount = amounts[len(amounts)-2]
				if len(amounts) > 2 {
					if v, ok := parseDecimalTok(amount); ok && v.IsZero() {
						amount = amounts[len(amounts)-3]
					}
				}
			}
			switch {
			case strings.HasPrefix(amount, "-"):
				raw[FieldWithdrawal] = strings.TrimPrefix(amount, "-")
			case havePrev && balOK && balance.LessThan(prevBalance):
				raw[FieldWithdrawal] = amount
			case havePrev && balOK && balance.GreaterThan(prevBalance):
				raw[FieldDeposit] = amount
			case withdrawalKeywords.matches(desc):
				raw[FieldWithdrawal] = amount
			case depositKeywords.matches(desc):
				raw[FieldDeposit] = amount
			default:
				raw[FieldAmount] = amount
			}
			if balOK {
				prevBalance, havePrev = balance, true
			}
			rows = append(rows, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
