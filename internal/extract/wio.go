package extract

import (
	"regexp"
	"strings"

	"github.com/stmtkit/stmtkit/internal/loader"
)

var wioRefRe = regexp.MustCompile(`^P\d+$`)

// extractWio reads Wio statements. Account and credit-card exports share one
// row shape: a leading date, an optional P-prefixed reference, description,
// then a trailing signed amount where negative is money out. Card rows may
// carry a masked card token before the amount; it is dropped from the
// description.
func extractWio(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	err := eachPage(doc, func(p *loader.Page) error {
		for _, line := range p.Lines() {
			fields := strings.Fields(line)
			if len(fields) < 3 || !dateSlashRe.MatchString(fields[0]) {
				continue
			}
			if noiseKeywords.matches(line) {
				continue
			}
			hits++
			rest, amounts := trailingAmounts(fields)
			if len(amounts) == 0 {
				continue
			}
			amount := amounts[0]

			raw := RawRow{FieldDate: fields[0]}
			desc := rest[1:]
			if len(desc) > 0 && wioRefRe.MatchString(desc[0]) {
				raw[FieldReference] = desc[0]
				desc = desc[1:]
			}
			kept := make([]string, 0, len(desc))
			for _, tok := range desc {
				if strings.HasPrefix(tok, "****") {
					continue
				}
				kept = append(kept, tok)
			}
			raw[FieldDescription] = joinFields(kept)
			if len(amounts) > 1 {
				raw[FieldBalance] = amounts[len(amounts)-1]
			}

			negative := strings.HasPrefix(amount, "-")
			amount = strings.TrimPrefix(strings.TrimPrefix(amount, "-"), "+")
			if negative {
				raw[FieldWithdrawal] = amount
			} else {
				raw[FieldDeposit] = amount
			}
			rows = append(rows, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hits == 0 {
		return nil, mismatch("Wio")
	}
	return rows, nil
}
