// Package extract pulls raw transaction rows out of loaded statement
// documents. One extractor per supported statement layout, plus a universal
// fallback. Extractors are deliberately lenient: they emit loosely typed raw
// rows and leave validation, coercion and the canonical-schema invariants to
// the normalizer.
package extract

import (
	"fmt"

	"github.com/stmtkit/stmtkit/internal/loader"
)

// Field names the slots of a raw row. An extractor fills either the resolved
// pair (FieldWithdrawal/FieldDeposit) or FieldAmount with an optional
// FieldIndicator; the normalizer resolves the rest.
type Field string

const (
	FieldDate        Field = "date"
	FieldWithdrawal  Field = "withdrawal"
	FieldDeposit     Field = "deposit"
	FieldAmount      Field = "amount"    // unresolved polarity
	FieldIndicator   Field = "indicator" // CR/DR marker accompanying FieldAmount
	FieldPayee       Field = "payee"
	FieldDescription Field = "description"
	FieldReference   Field = "reference"
	FieldBalance     Field = "balance" // running balance, kept for reconciliation
)

// RawRow is one statement line as the extractor saw it, before any coercion.
type RawRow map[Field]string

// Extractor turns a document into raw rows. It returns an error wrapping
// statement.ErrFormatMismatch only when no page of the document carries the
// layout's anchors; rows that merely fail to parse are simply not emitted.
type Extractor interface {
	Extract(doc *loader.Document) ([]RawRow, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(doc *loader.Document) ([]RawRow, error)

func (f ExtractorFunc) Extract(doc *loader.Document) ([]RawRow, error) { return f(doc) }

// Registry maps bank IDs to extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// Register adds an extractor. Registering the same ID twice is a programming
// error and panics.
func (r *Registry) Register(id string, e Extractor) {
	if _, dup := r.extractors[id]; dup {
		panic(fmt.Sprintf("extract: extractor %q already registered", id))
	}
	r.extractors[id] = e
}

// Get looks up an extractor by bank ID.
func (r *Registry) Get(id string) (Extractor, bool) {
	e, ok := r.extractors[id]
	return e, ok
}

// DefaultRegistry returns a registry with every built-in extractor
// registered under its catalog ID.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("emirates_nbd", ExtractorFunc(extractEmiratesNBD))
	r.Register("emirates_nbd_text", ExtractorFunc(extractEmiratesNBDText))
	r.Register("emirates_islamic", ExtractorFunc(extractEmiratesIslamic))
	r.Register("wio", ExtractorFunc(extractWio))
	r.Register("rakbank", ExtractorFunc(extractRAKBank))
	r.Register("rakbank_credit", ExtractorFunc(extractRAKBankCredit))
	r.Register("dib", ExtractorFunc(extractDIB))
	r.Register("banque_misr", ExtractorFunc(extractBanqueMisr))
	r.Register("adcb", ExtractorFunc(extractADCB))
	r.Register("adcb_table", ExtractorFunc(extractADCBTable))
	r.Register("adcb_credit", ExtractorFunc(extractADCBCredit))
	r.Register("adcb_statement", ExtractorFunc(extractADCBStatement))
	r.Register("mashreq", ExtractorFunc(extractMashreq))
	r.Register("mashreq_v2", ExtractorFunc(extractMashreqV2))
	r.Register("uab", ExtractorFunc(extractUAB))
	r.Register("baroda", ExtractorFunc(extractBaroda))
	r.Register("pluto", ExtractorFunc(extractPluto))
	r.Register("other", ExtractorFunc(extractUniversal))
	r.Register("spreadsheet", ExtractorFunc(extractSpreadsheet))
	return r
}
