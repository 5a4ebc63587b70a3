package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stmtkit/stmtkit/internal/loader"
	"github.com/stmtkit/stmtkit/internal/statement"
)

// mismatch is the error every layout extractor returns when none of the
// document's pages carried its anchors.
func mismatch(layout string) error {
	return fmt.Errorf("no %s layout found in document: %w", layout, statement.ErrFormatMismatch)
}

// eachPage visits document pages in order, decoding lazily.
func eachPage(doc *loader.Document, fn func(p *loader.Page) error) error {
	for i := 0; i < doc.NumPages(); i++ {
		p, err := doc.Page(i)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

var (
	amountRe        = regexp.MustCompile(`^-?\(?\d{1,3}(?:,\d{3})*(?:\.\d{1,3})?\)?-?$`)
	decimalAmountRe = regexp.MustCompile(`^-?\(?\d{1,3}(?:,\d{3})*\.\d{1,3}\)?-?$`)

	dateSlashRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	dateDashRe    = regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{2,4}$`)
	dateDotRe     = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{2,4}$`)
	dateMonRe     = regexp.MustCompile(`^\d{1,2}-[A-Za-z]{3}-\d{2,4}$`)
	dateCompactRe = regexp.MustCompile(`^\d{2}[A-Za-z]{3}\d{2,4}$`)
	dateISORe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// isAmount reports whether tok looks like a money amount, decimal part
// optional.
func isAmount(tok string) bool {
	return tok != "" && amountRe.MatchString(tok)
}

// isDecimalAmount is the strict form: bank statement amounts always carry a
// decimal part, which keeps reference numbers from matching.
func isDecimalAmount(tok string) bool {
	return tok != "" && decimalAmountRe.MatchString(tok)
}

// isDateToken reports whether tok matches any date shape the supported banks
// print.
func isDateToken(tok string) bool {
	return dateSlashRe.MatchString(tok) ||
		dateDashRe.MatchString(tok) ||
		dateDotRe.MatchString(tok) ||
		dateMonRe.MatchString(tok) ||
		dateCompactRe.MatchString(tok) ||
		dateISORe.MatchString(tok)
}

// trailingAmounts splits fields into the leading remainder and the run of
// amount-looking tokens at the end of the line.
func trailingAmounts(fields []string) (rest, amounts []string) {
	i := len(fields)
	for i > 0 && isDecimalAmount(fields[i-1]) {
		i--
	}
	return fields[:i], fields[i:]
}

// parseDecimalTok parses an amount token for in-extractor comparisons such
// as balance trends. Full coercion stays in the normalizer.
func parseDecimalTok(tok string) (decimal.Decimal, bool) {
	clean := strings.NewReplacer(",", "", "(", "-", ")", "", " ", "").Replace(strings.TrimSpace(tok))
	clean = strings.TrimSuffix(clean, "-")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// joinFields trims and space-joins, dropping empties.
func joinFields(fields []string) string {
	var kept []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// stripArabic removes non-ASCII runes; several banks print bilingual labels
// and the Arabic half only confuses downstream matching.
func stripArabic(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r > 127 {
			return -1
		}
		return r
	}, s))
}
