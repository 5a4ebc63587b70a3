package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stmtkit/stmtkit/internal/loader"
)

// extractADCB reads the flowed-text account statement. Each row trails with
// the moved amount and the running balance; whether the amount is a debit or
// a credit is decided by comparing consecutive balances. The opening balance
// line seeds the comparison. Statement renderers sometimes repeat a row at a
// page break, so exact consecutive duplicates are dropped.
func extractADCB(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	var prevBalance decimal.Decimal
	havePrev := false
	lastKey := ""

	err := eachPage(doc, func(p *loader.Page) error {
		for _, line := range p.Lines() {
			upper := strings.ToUpper(line)
			fields := strings.Fields(line)
			_, amounts := trailingAmounts(fields)

			if strings.Contains(upper, "OPENING BALANCE") || strings.Contains(upper, "BALANCE BROUGHT FORWARD") {
				if len(amounts) > 0 {
					if b, ok := parseDecimalTok(amounts[len(amounts)-1]); ok {
						prevBalance, havePrev = b, true
					}
				}
				continue
			}
			if len(fields) < 3 || !dateSlashRe.MatchString(fields[0]) || noiseKeywords.matches(upper) {
				continue
			}
			if len(amounts) < 2 {
				continue
			}
			hits++

			rest := fields[:len(fields)-len(amounts)]
			amount := amounts[0]
			balanceTok := amounts[len(amounts)-1]

			key := fields[0] + "|" + joinFields(rest[1:]) + "|" + amount + "|" + balanceTok
			if key == lastKey {
				continue
			}
			lastKey = key

			raw := RawRow{
				FieldDate:        fields[0],
				FieldDescription: joinFields(rest[1:]),
				FieldBalance:     balanceTok,
			}
			balance, balOK := parseDecimalTok(balanceTok)
			switch {
			case havePrev && balOK && balance.LessThan(prevBalance):
				raw[FieldWithdrawal] = amount
			case havePrev && balOK:
				raw[FieldDeposit] = amount
			default:
				// No balance history yet; leave polarity to the
				// normalizer's sign rules.
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
		return nil, mismatch("ADCB text")
	}
	return rows, nil
}

// extractADCBTable reads the ruled-table layout: date like 02-Jan-2006 in
// the first column, then description cells, with debit, credit and balance
// as the last three columns.
func extractADCBTable(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	err := eachPage(doc, func(p *loader.Page) error {
		for _, table := range p.Tables() {
			for _, tr := range table {
				if len(tr) < 4 || !dateMonRe.MatchString(cell(tr, 0)) {
					continue
				}
				hits++
				n := len(tr)
				raw := RawRow{
					FieldDate:        cell(tr, 0),
					FieldDescription: joinFields(tr[1 : n-3]),
				}
				rowField(raw, FieldWithdrawal, tr, n-3)
				rowField(raw, FieldDeposit, tr, n-2)
				rowField(raw, FieldBalance, tr, n-1)
				rows = append(rows, raw)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hits == 0 {
		return nil, mismatch("ADCB table")
	}
	return rows, nil
}

// extractADCBCredit reads the credit-card statement: transaction and posting
// dates, description, then the amount with an optional CR suffix marking
// repayments.
func extractADCBCredit(doc *loader.Document) ([]RawRow, error) {
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
			if last := strings.ToUpper(fields[len(fields)-1]); last == "CR" {
				credit = true
				fields = fields[:len(fields)-1]
			} else if strings.HasSuffix(last, "CR") && isDecimalAmount(strings.TrimSuffix(last, "CR")) {
				credit = true
				fields[len(fields)-1] = strings.TrimSuffix(last, "CR")
			}
			rest, amounts := trailingAmounts(fields)
			if len(amounts) == 0 {
				continue
			}

			descStart := 1
			if len(rest) > 1 && dateSlashRe.MatchString(rest[1]) {
				descStart = 2 // posting date follows the transaction date
			}
			raw := RawRow{
				FieldDate:        fields[0],
				FieldDescription: joinFields(rest[descStart:]),
			}
			if credit {
				raw[FieldDeposit] = amounts[len(amounts)-1]
			} else {
				raw[FieldWithdrawal] = amounts[len(amounts)-1]
			}
			rows = append(rows, raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hits == 0 {
		return nil, mismatch("ADCB credit card")
	}
	return rows, nil
}

var adcbBlockStartRe = regexp.MustCompile(`^\d+\s+\d{1,2}-[A-Za-z]{3}-\d{4}\b`)

// extractADCBStatement reads the numbered statement layout. Rows are
// multi-line blocks opened by a sequence number and a date; a trailing minus
// after the amount marks a debit, a leading minus marks a credit.
func extractADCBStatement(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		fields := strings.Fields(strings.Join(block, " "))
		block = nil
		if len(fields) < 3 {
			return
		}
		raw := RawRow{FieldDate: fields[1]}
		var descParts []string
		for i := 2; i < len(fields); i++ {
			tok := fields[i]
			switch {
			case isDecimalAmount(tok) && i+1 < len(fields) && fields[i+1] == "-":
				raw[FieldWithdrawal] = tok
				i++
			case tok == "-" && i+1 < len(fields) && isDecimalAmount(fields[i+1]):
				raw[FieldDeposit] = fields[i+1]
				i++
			case isDecimalAmount(tok) && strings.HasSuffix(tok, "-"):
				raw[FieldWithdrawal] = strings.TrimSuffix(tok, "-")
			case isDecimalAmount(tok) && (raw[FieldWithdrawal] != "" || raw[FieldDeposit] != ""):
				raw[FieldBalance] = tok
			default:
				descParts = append(descParts, tok)
			}
		}
		if raw[FieldWithdrawal] == "" && raw[FieldDeposit] == "" {
			return
		}
		raw[FieldDescription] = joinFields(descParts)
		rows = append(rows, raw)
	}

	err := eachPage(doc, func(p *loader.Page) error {
		for _, line := range p.Lines() {
			if adcbBlockStartRe.MatchString(line) {
				flush()
				hits++
				block = append(block, line)
				continue
			}
			if len(block) > 0 {
				block = append(block, line)
			}
		}
		return nil
	})
	flush()
	if err != nil {
		return nil, err
	}
	if hits == 0 {
		return nil, mismatch("ADCB numbered statement")
	}
	return rows, nil
}
