package extract

import (
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/stmtkit/stmtkit/internal/loader"
)

// Header labels on the bilingual account statement; the Arabic forms appear
// alone on scanned variants.
var rakbankBands = []bandSpec{
	{field: FieldDate, aliases: []string{"date", "التاريخ"}},
	{field: FieldDescription, aliases: []string{"description", "details", "البيان", "التفاصيل"}},
	{field: FieldReference, aliases: []string{"cheque", "ref", "المرجع"}},
	{field: FieldWithdrawal, aliases: []string{"withdrawal", "debit", "مدين"}},
	{field: FieldDeposit, aliases: []string{"deposit", "credit", "دائن"}},
	{field: FieldBalance, aliases: []string{"balance", "الرصيد"}},
}

// extractRAKBank reads the account statement by column position: the header
// labels anchor each column's X range and every word below is claimed by the
// band it starts in.
func extractRAKBank(doc *loader.Document) ([]RawRow, error) {
	return extractByBands(doc, rakbankBands, false, 0, "RAKBank account")
}

// extractRAKBankCredit reads the credit-card statement. Lines carry the
// transaction and posting dates, the merchant, an optional foreign-currency
// figure, the AED amount, and a Cr suffix on repayments. Foreign currencies
// are recognized against the ISO table so merchant names keep their
// three-letter words.
func extractRAKBankCredit(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	err := eachPage(doc, func(p *loader.Page) error {
		for _, line := range p.Lines() {
			fields := strings.Fields(line)
			if len(fields) < 3 || !dateSlashRe.MatchString(fields[0]) {
				continue
			}
			hits++

			credit := false
			if last := fields[len(fields)-1]; strings.EqualFold(last, "cr") {
				credit = true
				fields = fields[:len(fields)-1]
			}
			rest, amounts := trailingAmounts(fields)
			if len(amounts) == 0 {
				continue
			}
			// With a foreign figure present the AED amount is last.
			amount := amounts[len(amounts)-1]

			descStart := 1
			if len(rest) > 1 && dateSlashRe.MatchString(rest[1]) {
				descStart = 2
			}
			var descParts []string
			for _, tok := range rest[descStart:] {
				if isCurrencyCode(tok) {
					continue
				}
				descParts = append(descParts, tok)
			}

			raw := RawRow{
				FieldDate:        fields[0],
				FieldDescription: joinFields(descParts),
			}
			if credit {
				raw[FieldDeposit] = amount
			} else {
				raw[FieldWithdrawal] = amount
			}
			rows = append(rows, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hits == 0 {
		return nil, mismatch("RAKBank credit card")
	}
	return rows, nil
}

// isCurrencyCode reports whether tok is a known ISO-4217 code.
func isCurrencyCode(tok string) bool {
	if len(tok) != 3 || tok != strings.ToUpper(tok) {
		return false
	}
	return money.GetCurrency(tok) != nil
}
