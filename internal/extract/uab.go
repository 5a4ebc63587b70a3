package extract

import (
	"github.com/stmtkit/stmtkit/internal/loader"
)

var uabBands = []bandSpec{
	{field: FieldWithdrawal, aliases: []string{"debit", "مدين"}},
	{field: FieldDeposit, aliases: []string{"credit", "دائن"}},
	{field: FieldBalance, aliases: []string{"balance", "الرصيد"}},
}

// extractUAB reads the United Arab Bank statement. Rows carry a posting date
// and a value date in dotted form with the description between them; the
// moved amount lands under either the debit or the credit header, which on
// this statement are printed in Arabic.
func extractUAB(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	var bands []headerBand

	err := eachPage(doc, func(p *loader.Page) error {
		for _, ws := range wordLines(p.Words()) {
			if b := findBands(ws, uabBands); hasBand(b, FieldWithdrawal) && hasBand(b, FieldDeposit) {
				bands = b
				continue
			}
			if len(ws) < 3 || !dateDotRe.MatchString(ws[0].Text) {
				continue
			}
			hits++

			// Description sits between the posting and value dates.
			second := -1
			for i := 1; i < len(ws); i++ {
				if dateDotRe.MatchString(ws[i].Text) {
					second = i
					break
				}
			}
			var descParts []string
			end := second
			if end < 0 {
				end = len(ws)
			}
			for _, w := range ws[1:end] {
				if s := stripArabic(w.Text); s != "" {
					descParts = append(descParts, s)
				}
			}
			raw := RawRow{
				FieldDate:        ws[0].Text,
				FieldDescription: joinFields(descParts),
			}

			if second >= 0 {
				for _, w := range ws[second+1:] {
					if !isDecimalAmount(w.Text) {
						continue
					}
					switch idx := nearestBandX(bands, w.X, 60); {
					case idx >= 0 && bands[idx].field == FieldWithdrawal:
						raw[FieldWithdrawal] = w.Text
					case idx >= 0 && bands[idx].field == FieldDeposit:
						raw[FieldDeposit] = w.Text
					case idx >= 0 && bands[idx].field == FieldBalance:
						raw[FieldBalance] = w.Text
					case raw[FieldAmount] == "":
						raw[FieldAmount] = w.Text
					default:
						raw[FieldBalance] = w.Text
					}
				}
			}
			rows = append(rows, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hits == 0 {
		return nil, mismatch("United Arab Bank")
	}
	return rows, nil
}
