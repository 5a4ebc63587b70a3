package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stmtkit/stmtkit/internal/loader"
)

// extractMashreq reads the ruled-table statement. Newer exports sign the
// single amount column; older ones split debit and credit into the two
// columns before the balance.
func extractMashreq(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	err := eachPage(doc, func(p *loader.Page) error {
		for _, table := range p.Tables() {
			cm := newColumnMap()
			headered := false
			for _, tr := range table {
				if !headered {
					if cm = mapColumns(tr); cm.usable() {
						headered = true
						continue
					}
				}
				if !isDateToken(cell(tr, 0)) && !(headered && isDateToken(cell(tr, cm.date))) {
					continue
				}
				hits++
				if headered {
					raw := RawRow{FieldDate: cell(tr, cm.date)}
					rowField(raw, FieldDescription, tr, cm.description)
					rowField(raw, FieldReference, tr, cm.reference)
					rowField(raw, FieldBalance, tr, cm.balance)
					if cm.amount >= 0 {
						resolveSignedCell(raw, cell(tr, cm.amount))
					} else {
						rowField(raw, FieldWithdrawal, tr, cm.withdrawal)
						rowField(raw, FieldDeposit, tr, cm.deposit)
					}
					rows = append(rows, raw)
					continue
				}

				// Headerless fallback: date, description cells, then
				// debit/credit/balance or signed amount/balance.
				var amounts []string
				var descParts []string
				for _, c := range tr[1:] {
					c = strings.TrimSpace(c)
					switch {
					case c == "":
					case isDecimalAmount(strings.TrimPrefix(c, "+")):
						amounts = append(amounts, c)
					default:
						descParts = append(descParts, c)
					}
				}
				raw := RawRow{FieldDate: cell(tr, 0), FieldDescription: joinFields(descParts)}
				switch len(amounts) {
				case 0:
					continue
				case 1:
					resolveSignedCell(raw, amounts[0])
				case 2:
					resolveSignedCell(raw, amounts[0])
					raw[FieldBalance] = amounts[1]
				default:
					raw[FieldWithdrawal] = amounts[0]
					raw[FieldDeposit] = amounts[1]
					raw[FieldBalance] = amounts[len(amounts)-1]
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
		return nil, mismatch("Mashreq table")
	}
	return rows, nil
}

// resolveSignedCell assigns an explicitly signed amount; unsigned ones stay
// in the ambiguous slot for the normalizer.
func resolveSignedCell(raw RawRow, c string) {
	c = strings.TrimSpace(c)
	switch {
	case c == "":
	case strings.HasPrefix(c, "-"):
		raw[FieldWithdrawal] = strings.TrimPrefix(c, "-")
	case strings.HasPrefix(c, "+"):
		raw[FieldDeposit] = strings.TrimPrefix(c, "+")
	default:
		raw[FieldAmount] = c
	}
}

// Channel codes like 099FBCNAED that the v2 layout wedges into narrations.
var mashreqChannelRe = regexp.MustCompile(`^0\d{2}[A-Z0-9]{4,}$`)

var mashreqDebitCues = newKeywordSet("VALUE ADDED TAX", "VAT", "FEE", "CHARGES", "COMMISSION")

// extractMashreqV2 reads the flowed layout with ISO dates. Polarity comes
// from the sign when printed, from tax and fee cue words otherwise, and from
// the balance trend as a last resort.
func extractMashreqV2(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	var prevBalance decimal.Decimal
	havePrev := false

	err := eachPage(doc, func(p *loader.Page) error {
		for _, line := range p.Lines() {
			fields := strings.Fields(line)
			if len(fields) < 3 || !dateISORe.MatchString(fields[0]) {
				continue
			}
			hits++
			rest, amounts := trailingAmounts(fields)
			if len(amounts) == 0 {
				continue
			}

			var descParts []string
			for _, tok := range rest[1:] {
				if mashreqChannelRe.MatchString(tok) {
					continue
				}
				descParts = append(descParts, tok)
			}
			desc := joinFields(descParts)
			raw := RawRow{FieldDate: fields[0], FieldDescription: desc}

			amount := amounts[0]
			var balance decimal.Decimal
			balOK := false
			if len(amounts) > 1 {
				raw[FieldBalance] = amounts[len(amounts)-1]
				balance, balOK = parseDecimalTok(amounts[len(amounts)-1])
			}
			switch {
			case strings.HasPrefix(amount, "-"):
				raw[FieldWithdrawal] = strings.TrimPrefix(amount, "-")
			case mashreqDebitCues.matches(desc):
				raw[FieldWithdrawal] = amount
			case havePrev && balOK && balance.LessThan(prevBalance):
				raw[FieldWithdrawal] = amount
			case havePrev && balOK:
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
	if hits == 0 {
		return nil, mismatch("Mashreq v2")
	}
	return rows, nil
}
