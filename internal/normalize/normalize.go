// Package normalize coerces the extractors' raw rows into the canonical
// schema. It is deliberately the only place where dates and amounts are
// parsed for real: extractors stay lenient, and every row that fails here is
// reported as a diagnostic rather than an error.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stmtkit/stmtkit/internal/extract"
	"github.com/stmtkit/stmtkit/internal/statement"
)

// Config carries the per-bank normalization hints.
type Config struct {
	// DateFormats are tried before the generic fallbacks, in order.
	DateFormats []string
}

// Generic layouts tried for every bank, UAE statements being day-first.
var fallbackDateFormats = []string{
	"02/01/2006", "2/1/2006", "02/01/06",
	"02-01-2006", "2-1-2006",
	"02.01.2006", "2.1.2006",
	"2006-01-02",
	"02-Jan-2006", "2-Jan-2006",
	"02Jan06", "02Jan2006",
	"2 Jan 2006", "02 Jan 2006", "2 January 2006",
	"Jan 2, 2006", "January 2, 2006",
}

// Normalize converts raw rows into canonical transactions. Rows that cannot
// be coerced are dropped with a diagnostic; Normalize itself never fails.
func Normalize(rows []extract.RawRow, cfg Config) *statement.Result {
	res := &statement.Result{TotalRows: len(rows)}

	drop := func(i int, reason, raw string) {
		res.Diagnostics = append(res.Diagnostics, statement.Diagnostic{Row: i, Reason: reason, RawData: raw})
		res.DroppedRows++
	}

	for i, raw := range rows {
		date, err := parseDate(raw[extract.FieldDate], cfg.DateFormats)
		if err != nil {
			drop(i, fmt.Sprintf("unparseable date: %v", err), raw[extract.FieldDate])
			continue
		}

		withdrawal, wErr := parseOptionalAmount(raw[extract.FieldWithdrawal])
		deposit, dErr := parseOptionalAmount(raw[extract.FieldDeposit])
		if wErr != nil {
			drop(i, fmt.Sprintf("unparseable withdrawal: %v", wErr), raw[extract.FieldWithdrawal])
			continue
		}
		if dErr != nil {
			drop(i, fmt.Sprintf("unparseable deposit: %v", dErr), raw[extract.FieldDeposit])
			continue
		}

		// An unresolved amount needs an indicator or an explicit sign.
		if withdrawal.IsZero() && deposit.IsZero() {
			if amt := raw[extract.FieldAmount]; amt != "" {
				v, err := parseAmount(amt)
				if err != nil {
					drop(i, fmt.Sprintf("unparseable amount: %v", err), amt)
					continue
				}
				switch resolveIndicator(raw[extract.FieldIndicator], v) {
				case directionOut:
					withdrawal = v.Abs()
				case directionIn:
					deposit = v.Abs()
				default:
					drop(i, "transaction direction could not be resolved", amt)
					continue
				}
			}
		}

		switch {
		case withdrawal.IsZero() && deposit.IsZero():
			drop(i, "row has no amount", "")
			continue
		case !withdrawal.IsZero() && !deposit.IsZero():
			drop(i, "row has both a withdrawal and a deposit", "")
			continue
		}

		res.Transactions = append(res.Transactions, statement.Transaction{
			Date:            date,
			Withdrawal:      withdrawal,
			Deposit:         deposit,
			Payee:           strings.TrimSpace(raw[extract.FieldPayee]),
			Description:     strings.TrimSpace(raw[extract.FieldDescription]),
			ReferenceNumber: strings.TrimSpace(raw[extract.FieldReference]),
		})
	}
	return res
}

type direction int

const (
	directionUnknown direction = iota
	directionOut
	directionIn
)

func resolveIndicator(indicator string, v decimal.Decimal) direction {
	switch strings.ToUpper(strings.TrimSpace(indicator)) {
	case "CR", "C", "CREDIT":
		return directionIn
	case "DR", "D", "DEBIT":
		return directionOut
	}
	if v.IsNegative() {
		return directionOut
	}
	return directionUnknown
}

// parseDate tries the bank's layouts first, then the generic ones. Month
// abbreviations are case-folded first since several banks print 02NOV25.
func parseDate(s string, bankFormats []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	candidate := foldMonthCase(s)
	for _, layout := range bankFormats {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, nil
		}
	}
	for _, layout := range fallbackDateFormats {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matched %q", s)
}

// foldMonthCase rewrites alphabetic runs to title case so NOV and nov both
// satisfy time.Parse's Jan token.
func foldMonthCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(upper(r))
		case isLetter:
			b.WriteRune(lower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}

func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 32
	}
	return r
}

// parseOptionalAmount treats empty and dash placeholders as zero.
func parseOptionalAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "--" {
		return decimal.Zero, nil
	}
	v, err := parseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	return v.Abs(), nil
}

// parseAmount coerces the amount spellings seen across the catalog: currency
// labels, thousands separators, accounting parentheses, trailing minus, and
// the European decimal comma.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") {
		neg = true
		s = strings.TrimSuffix(s, "-")
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimPrefix(s, "-")
	}
	s = strings.TrimPrefix(s, "+")

	// Strip currency labels like "AED 1,200.00".
	fields := strings.Fields(s)
	if len(fields) == 2 && isAlpha(fields[0]) {
		s = fields[1]
	} else {
		s = strings.Join(fields, "")
	}

	// Decimal comma: the comma follows the last dot, or stands alone with
	// exactly two trailing digits.
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	if lastComma > lastDot && (lastDot >= 0 || (strings.Count(s, ",") == 1 && len(s)-lastComma-1 == 2)) {
		s = strings.ReplaceAll(s[:lastComma], ".", "") + "." + s[lastComma+1:]
	}
	s = strings.ReplaceAll(s, ",", "")

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}
	if neg {
		v = v.Neg()
	}
	return v, nil
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// ReconcileBalances cross-checks resolved polarities against the running
// balance column where extractors carried one. It returns a diagnostic per
// row whose balance delta disagrees with the transaction direction.
func ReconcileBalances(rows []extract.RawRow) []statement.Diagnostic {
	var diags []statement.Diagnostic
	var prev decimal.Decimal
	have := false

	for i, raw := range rows {
		balTok := raw[extract.FieldBalance]
		if balTok == "" {
			continue
		}
		bal, err := parseAmount(balTok)
		if err != nil {
			continue
		}
		if have {
			delta := bal.Sub(prev)
			w, _ := parseOptionalAmount(raw[extract.FieldWithdrawal])
			d, _ := parseOptionalAmount(raw[extract.FieldDeposit])
			expected := d.Sub(w)
			if !expected.IsZero() && !delta.Equal(expected) {
				diags = append(diags, statement.Diagnostic{
					Row:     i,
					Reason:  fmt.Sprintf("balance moved %s but transaction says %s", delta, expected),
					RawData: balTok,
				})
			}
		}
		prev, have = bal, true
	}
	return diags
}
