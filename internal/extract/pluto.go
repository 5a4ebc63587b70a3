package extract

import (
	"regexp"
	"strings"

	"github.com/stmtkit/stmtkit/internal/loader"
)

var (
	plutoRefRe    = regexp.MustCompile(`\bT-\d+\b`)
	monthNameRe   = regexp.MustCompile(`^[A-Za-z]{3}$`)
	yearTokenRe   = regexp.MustCompile(`^\d{4},?$`)
	currencyTokRe = regexp.MustCompile(`^[A-Z]{3}$`)
)

// extractPluto reads Pluto card exports. Lines carry one signed AED amount;
// foreign-currency figures (a three-letter code before the number) are the
// original purchase amount and are skipped in favor of the AED one. T-prefixed
// references often land on the following line and are folded back into the
// row they belong to.
func extractPluto(doc *loader.Document) ([]RawRow, error) {
	var rows []RawRow
	hits := 0
	err := eachPage(doc, func(p *loader.Page) error {
		for _, line := range p.Lines() {
			fields := strings.Fields(line)
			date, rest := plutoDate(fields)
			if date == "" {
				// Continuation line: attach a reference to the last row.
				if len(rows) > 0 {
					if ref := plutoRefRe.FindString(line); ref != "" && rows[len(rows)-1][FieldReference] == "" {
						rows[len(rows)-1][FieldReference] = ref
					}
				}
				continue
			}
			hits++

			amount := ""
			var descParts []string
			for i := 0; i < len(rest); i++ {
				tok := rest[i]
				if currencyTokRe.MatchString(tok) && i+1 < len(rest) && isDecimalAmount(rest[i+1]) {
					// Currency-prefixed figure: keep only the AED one.
					if tok == "AED" && amount == "" {
						amount = rest[i+1]
					}
					i++
					continue
				}
				if isDecimalAmount(tok) && amount == "" {
					amount = tok
					continue
				}
				descParts = append(descParts, tok)
			}
			if amount == "" {
				continue
			}
			raw := RawRow{
				FieldDate:        date,
				FieldDescription: joinFields(descParts),
			}
			if ref := plutoRefRe.FindString(line); ref != "" {
				raw[FieldReference] = ref
			}
			if strings.HasPrefix(amount, "-") {
				raw[FieldWithdrawal] = strings.TrimPrefix(amount, "-")
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
		return nil, mismatch("Pluto")
	}
	return rows, nil
}

// plutoDate recognizes either a one-token date or the spelled form
// "2 Jan 2025" at the start of a line, returning the joined date and the
// remaining tokens.
func plutoDate(fields []string) (string, []string) {
	if len(fields) == 0 {
		return "", nil
	}
	if isDateToken(fields[0]) {
		return fields[0], fields[1:]
	}
	if len(fields) >= 3 && len(fields[0]) <= 2 && allDigits(fields[0]) &&
		monthNameRe.MatchString(fields[1]) && yearTokenRe.MatchString(fields[2]) {
		return fields[0] + " " + fields[1] + " " + strings.TrimSuffix(fields[2], ","), fields[3:]
	}
	return "", nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
