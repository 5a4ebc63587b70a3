package extract

import "github.com/stmtkit/stmtkit/internal/loader"

// extractBanqueMisr reads the ruled table of the bilingual statement. The
// table is laid out right to left, so the date sits in the last column and
// the money columns lead: balance, credit, debit.
func extractBanqueMisr(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	err := eachPage(doc, func(p *loader.Page) error {
		for _, table := range p.Tables() {
			for _, tr := range table {
				n := len(tr)
				if n < 5 || !isDateToken(cell(tr, n-1)) {
					continue
				}
				hits++
				raw := RawRow{
					FieldDate:        cell(tr, n-1),
					FieldDescription: stripArabic(cell(tr, n-2)),
				}
				rowField(raw, FieldBalance, tr, 0)
				rowField(raw, FieldDeposit, tr, 1)
				rowField(raw, FieldWithdrawal, tr, 2)
				if n >= 7 {
					rowField(raw, FieldReference, tr, n-3)
				}
				rows = append(rows, raw)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hits == 0 {
		return nil, mismatch("Banque Misr table")
	}
	return rows, nil
}
