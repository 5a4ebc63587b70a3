package extract

import (
	"strings"

	"github.com/stmtkit/stmtkit/internal/loader"
)

// The Baroda statement never moves its columns, so fixed X ranges are more
// reliable than header detection on this layout.
var barodaColumns = []struct {
	field    Field
	from, to float64
}{
	{FieldDate, 0, 80},
	{FieldDescription, 80, 420},
	{FieldWithdrawal, 420, 480},
	{FieldDeposit, 480, 560},
	{FieldBalance, 560, 640},
}

// extractBaroda reads the Bank of Baroda statement using its fixed column
// positions. Rows whose only figures are zero are artifacts of the bank's
// renderer and are dropped.
func extractBaroda(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	err := eachPage(doc, func(p *loader.Page) error {
		for _, ws := range wordLines(p.Words()) {
			vals := make(map[Field][]string)
			for _, w := range ws {
				for _, col := range barodaColumns {
					if w.X >= col.from && w.X < col.to {
						vals[col.field] = append(vals[col.field], w.Text)
						break
					}
				}
			}
			date := strings.Join(vals[FieldDate], "")
			if !isDateToken(date) {
				if len(rows) > 0 && len(vals[FieldDescription]) > 0 &&
					len(vals[FieldWithdrawal])+len(vals[FieldDeposit]) == 0 {
					last := rows[len(rows)-1]
					last[FieldDescription] = strings.TrimSpace(last[FieldDescription] + " " + joinFields(vals[FieldDescription]))
				}
				continue
			}
			hits++

			withdrawal := strings.Join(vals[FieldWithdrawal], "")
			deposit := strings.Join(vals[FieldDeposit], "")
			if isZeroAmount(withdrawal) && isZeroAmount(deposit) {
				continue
			}
			raw := RawRow{
				FieldDate:        date,
				FieldDescription: joinFields(vals[FieldDescription]),
			}
			if isAmount(withdrawal) && !isZeroAmount(withdrawal) {
				raw[FieldWithdrawal] = withdrawal
			}
			if isAmount(deposit) && !isZeroAmount(deposit) {
				raw[FieldDeposit] = deposit
			}
			if balance := strings.Join(vals[FieldBalance], ""); isAmount(balance) {
				raw[FieldBalance] = balance
			}
			rows = append(rows, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hits == 0 {
		return nil, mismatch("Bank of Baroda")
	}
	return rows, nil
}

func isZeroAmount(tok string) bool {
	if tok == "" {
		return true
	}
	d, ok := parseDecimalTok(tok)
	return ok && d.IsZero()
}
