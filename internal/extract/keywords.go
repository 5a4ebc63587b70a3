package extract

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// keywordSet is a case-insensitive multi-pattern matcher. Aho-Corasick keeps
// the per-line cost flat even with long cue-word lists.
type keywordSet struct {
	m *ahocorasick.Matcher
}

func newKeywordSet(words ...string) *keywordSet {
	upper := make([]string, len(words))
	for i, w := range words {
		upper[i] = strings.ToUpper(w)
	}
	return &keywordSet{m: ahocorasick.NewStringMatcher(upper)}
}

func (k *keywordSet) matches(s string) bool {
	return len(k.m.Match([]byte(strings.ToUpper(s)))) > 0
}

// Cue words for resolving transaction polarity from descriptions, used by
// layouts that print a single amount column with no CR/DR marker.
var (
	depositKeywords = newKeywordSet(
		"REFUND", "CUSTOMER CREDIT", "TRANSFER IN", "CREDIT", "POS-REFUNDS",
		"SETT", "REMIT", "SALARY", "CASH DEPOSIT", "INWARD REMITTANCE",
	)
	withdrawalKeywords = newKeywordSet(
		"POS-PURCHASE", "PURCHASE", "INWARD CHEQUE", "CHQ", "DEBIT",
		"CLEARING", "FEE", "CHARGES", "VALUE ADDED TAX", "ATM", "WITHDRAWAL",
		"OUTWARD",
	)

	// Lines that are statement furniture rather than transactions.
	noiseKeywords = newKeywordSet(
		"OPENING BALANCE", "CLOSING BALANCE", "BALANCE BROUGHT FORWARD",
		"BALANCE CARRIED FORWARD", "TOTAL DEBIT", "TOTAL CREDIT",
		"PAGE ", "STATEMENT OF ACCOUNT", "END OF STATEMENT",
	)
)
