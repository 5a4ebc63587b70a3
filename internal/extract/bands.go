package extract

import (
	"strings"

	"github.com/stmtkit/stmtkit/internal/loader"
)

// extractByBands drives the column-position layouts: a header row gives each
// field an X anchor, and every following word is claimed by a band. With
// nearest=false a band owns everything from its label rightwards to the next
// label; with nearest=true a word must sit within tol of a label and strays
// default to the description.
func extractByBands(doc *loader.Document, specs []bandSpec, nearest bool, tol float64, layout string) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	var bands []headerBand

	err := eachPage(doc, func(p *loader.Page) error {
		for _, ws := range wordLines(p.Words()) {
			if b := findBands(ws, specs); len(b) >= 3 && hasBand(b, FieldDate) {
				bands = b
				continue
			}
			if bands == nil {
				continue
			}

			vals := make(map[Field][]string)
			for _, w := range ws {
				var idx int
				if nearest {
					idx = nearestBandX(bands, w.X, tol)
				} else {
					idx = bandForX(bands, w.X+w.W/2, 8)
				}
				if idx < 0 {
					if nearest {
						vals[FieldDescription] = append(vals[FieldDescription], w.Text)
					}
					continue
				}
				f := bands[idx].field
				vals[f] = append(vals[f], w.Text)
			}

			date := strings.Join(vals[FieldDate], "")
			if !isDateToken(date) {
				// Wrapped descriptions spill onto their own lines.
				if len(rows) > 0 && len(vals[FieldDescription]) > 0 &&
					len(vals[FieldWithdrawal])+len(vals[FieldDeposit])+len(vals[FieldBalance]) == 0 {
					last := rows[len(rows)-1]
					last[FieldDescription] = strings.TrimSpace(last[FieldDescription] + " " + stripArabic(joinFields(vals[FieldDescription])))
				}
				continue
			}
			hits++

			raw := RawRow{FieldDate: date}
			if v := stripArabic(joinFields(vals[FieldDescription])); v != "" {
				raw[FieldDescription] = v
			}
			if v := joinFields(vals[FieldPayee]); v != "" {
				raw[FieldPayee] = v
			}
			if v := joinFields(vals[FieldReference]); v != "" {
				raw[FieldReference] = v
			}
			for _, f := range []Field{FieldWithdrawal, FieldDeposit, FieldBalance, FieldAmount} {
				if v := strings.Join(vals[f], ""); v != "" && isAmount(v) {
					raw[f] = v
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
		return nil, mismatch(layout)
	}
	return rows, nil
}

func hasBand(bands []headerBand, f Field) bool {
	for _, b := range bands {
		if b.field == f {
			return true
		}
	}
	return false
}
