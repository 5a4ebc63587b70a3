// Package bank holds the catalog of supported statement formats. The catalog
// is built once at startup and read-only afterwards, so concurrent
// conversions share it freely.
package bank

import "fmt"

// SourceKind is the document family a bank's statements arrive in.
type SourceKind int

const (
	// SourceDocument statements are PDFs, possibly scanned.
	SourceDocument SourceKind = iota
	// SourceSpreadsheet statements are XLSX or CSV exports.
	SourceSpreadsheet
)

// Profile describes one supported statement format.
type Profile struct {
	ID               string
	DisplayName      string
	Source           SourceKind
	SupportsPassword bool

	// DateFormats are the Go layouts this bank's statements use, tried in
	// order before the generic fallbacks.
	DateFormats []string
}

// Catalog is an immutable set of profiles keyed by ID.
type Catalog struct {
	profiles map[string]Profile
	order    []string
}

// NewCatalog builds a catalog. Duplicate IDs are a programming error and
// panic.
func NewCatalog(profiles ...Profile) *Catalog {
	c := &Catalog{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		if _, dup := c.profiles[p.ID]; dup {
			panic(fmt.Sprintf("bank: duplicate profile %q", p.ID))
		}
		c.profiles[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

// Get looks up a profile by ID.
func (c *Catalog) Get(id string) (Profile, bool) {
	p, ok := c.profiles[id]
	return p, ok
}

// List returns all profiles in registration order.
func (c *Catalog) List() []Profile {
	out := make([]Profile, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.profiles[id])
	}
	return out
}

// Default returns the built-in catalog. IDs here must stay in sync with the
// extractor registry.
func Default() *Catalog {
	return NewCatalog(
		Profile{ID: "emirates_nbd", DisplayName: "Emirates NBD", SupportsPassword: true,
			DateFormats: []string{"02/01/2006", "2/1/2006"}},
		Profile{ID: "emirates_nbd_text", DisplayName: "Emirates NBD (text layout)", SupportsPassword: true,
			DateFormats: []string{"02Jan06", "02Jan2006"}},
		Profile{ID: "emirates_islamic", DisplayName: "Emirates Islamic", SupportsPassword: true,
			DateFormats: []string{"02/01/2006", "2/1/2006"}},
		Profile{ID: "wio", DisplayName: "Wio Bank", SupportsPassword: true,
			DateFormats: []string{"02/01/2006", "2 Jan 2006"}},
		Profile{ID: "rakbank", DisplayName: "RAKBank", SupportsPassword: true,
			DateFormats: []string{"02-01-2006", "02/01/2006"}},
		Profile{ID: "rakbank_credit", DisplayName: "RAKBank Credit Card", SupportsPassword: true,
			DateFormats: []string{"02/01/2006", "2 Jan 2006"}},
		Profile{ID: "dib", DisplayName: "Dubai Islamic Bank", SupportsPassword: true,
			DateFormats: []string{"02/01/2006"}},
		Profile{ID: "banque_misr", DisplayName: "Banque Misr", SupportsPassword: true,
			DateFormats: []string{"02/01/2006"}},
		Profile{ID: "adcb", DisplayName: "ADCB", SupportsPassword: true,
			DateFormats: []string{"02/01/2006", "2/1/2006"}},
		Profile{ID: "adcb_table", DisplayName: "ADCB (tabular layout)", SupportsPassword: true,
			DateFormats: []string{"02-Jan-2006"}},
		Profile{ID: "adcb_credit", DisplayName: "ADCB Credit Card", SupportsPassword: true,
			DateFormats: []string{"02/01/2006"}},
		Profile{ID: "adcb_statement", DisplayName: "ADCB (numbered statement)", SupportsPassword: true,
			DateFormats: []string{"02-Jan-2006"}},
		Profile{ID: "mashreq", DisplayName: "Mashreq", SupportsPassword: true,
			DateFormats: []string{"02/01/2006", "2/1/2006"}},
		Profile{ID: "mashreq_v2", DisplayName: "Mashreq (v2 layout)", SupportsPassword: true,
			DateFormats: []string{"2006-01-02"}},
		Profile{ID: "uab", DisplayName: "United Arab Bank", SupportsPassword: true,
			DateFormats: []string{"02.01.2006"}},
		Profile{ID: "baroda", DisplayName: "Bank of Baroda", SupportsPassword: true,
			DateFormats: []string{"02/01/2006"}},
		Profile{ID: "pluto", DisplayName: "Pluto Card", SupportsPassword: true,
			DateFormats: []string{"2 Jan 2006", "02/01/2006", "2006-01-02"}},
		Profile{ID: "other", DisplayName: "Other Banks", SupportsPassword: true},
		Profile{ID: "spreadsheet", DisplayName: "Excel / CSV", Source: SourceSpreadsheet},
	)
}
