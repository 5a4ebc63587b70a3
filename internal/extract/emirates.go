package extract

import (
	"regexp"
	"strings"

	"github.com/stmtkit/stmtkit/internal/loader"
)

var ibanRefRe = regexp.MustCompile(`\bAE\d{10,}\b`)

// extractEmiratesNBD reads the ruled-table account statement: date in the
// first column, description in the third, then debit and credit columns.
func extractEmiratesNBD(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	err := eachPage(doc, func(p *loader.Page) error {
		for _, table := range p.Tables() {
			for _, tr := range table {
				if len(tr) < 5 || !isDateToken(cell(tr, 0)) {
					continue
				}
				hits++
				desc := cell(tr, 2)
				raw := RawRow{
					FieldDate:        cell(tr, 0),
					FieldDescription: desc,
				}
				rowField(raw, FieldWithdrawal, tr, 3)
				rowField(raw, FieldDeposit, tr, 4)
				if len(tr) > 5 {
					rowField(raw, FieldBalance, tr, 5)
				}
				if ref := ibanRefRe.FindString(desc); ref != "" {
					raw[FieldReference] = ref
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
		return nil, mismatch("Emirates NBD table")
	}
	return rows, nil
}

// extractEmiratesNBDText reads the flowed-text layout: compact dates like
// 02NOV25 open each row, the amount trails, and polarity comes from cue
// words in the description, defaulting to deposit.
func extractEmiratesNBDText(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	err := eachPage(doc, func(p *loader.Page) error {
		for _, line := range p.Lines() {
			fields := strings.Fields(line)
			if len(fields) < 3 || !dateCompactRe.MatchString(fields[0]) {
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
			desc := joinFields(rest[1:])
			raw := RawRow{
				FieldDate:        fields[0],
				FieldDescription: desc,
			}
			// With a trailing balance the amount is the first figure.
			amount := amounts[0]
			if len(amounts) > 1 {
				raw[FieldBalance] = amounts[len(amounts)-1]
			}
			switch {
			case withdrawalKeywords.matches(desc):
				raw[FieldWithdrawal] = amount
			default:
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
		return nil, mismatch("Emirates NBD text")
	}
	return rows, nil
}

var separatorLineRe = regexp.MustCompile(`^-{3,}$`)

// extractEmiratesIslamic prefers the ruled table; older statements print
// dash-separated text blocks instead, so those are the fallback. Duplicate
// rows across page boundaries are dropped.
func extractEmiratesIslamic(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	seen := make(map[string]bool)

	addRow := func(raw RawRow) {
		key := raw[FieldDate] + "|" + raw[FieldDescription] + "|" + raw[FieldWithdrawal] + "|" + raw[FieldDeposit]
		if seen[key] {
			return
		}
		seen[key] = true
		rows = append(rows, raw)
	}

	err := eachPage(doc, func(p *loader.Page) error {
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
				hits++
				tabled = true
				raw := RawRow{FieldDate: cell(tr, cm.date)}
				rowField(raw, FieldDescription, tr, cm.description)
				rowField(raw, FieldWithdrawal, tr, cm.withdrawal)
				rowField(raw, FieldDeposit, tr, cm.deposit)
				rowField(raw, FieldReference, tr, cm.reference)
				rowField(raw, FieldBalance, tr, cm.balance)
				addRow(raw)
			}
		}
		if tabled {
			return nil
		}

		// Text fallback: rows are blocks between dashed separator lines.
		var block []string
		flush := func() {
			if len(block) == 0 {
				return
			}
			fields := strings.Fields(strings.Join(block, " "))
			block = nil
			if len(fields) < 3 || !isDateToken(fields[0]) {
				return
			}
			hits++
			rest, amounts := trailingAmounts(fields)
			if len(amounts) == 0 {
				return
			}
			desc := joinFields(rest[1:])
			raw := RawRow{
				FieldDate:        fields[0],
				FieldDescription: desc,
			}
			if len(amounts) > 1 {
				raw[FieldBalance] = amounts[len(amounts)-1]
			}
			if withdrawalKeywords.matches(desc) {
				raw[FieldWithdrawal] = amounts[0]
			} else {
				raw[FieldDeposit] = amounts[0]
			}
			addRow(raw)
		}
		for _, line := range p.Lines() {
			if separatorLineRe.MatchString(strings.TrimSpace(line)) {
				flush()
				continue
			}
			block = append(block, line)
		}
		flush()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if hits == 0 {
		return nil, mismatch("Emirates Islamic")
	}
	return rows, nil
}
