// Package loader turns uploaded statement bytes into a uniform Document of
// pages. It owns format sniffing, PDF decryption, spreadsheet decoding and the
// OCR hook; extractors only ever see pages.
package loader

import (
	"bytes"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/stmtkit/stmtkit/internal/statement"
)

// Kind identifies the underlying document format.
type Kind int

const (
	KindUnknown Kind = iota
	KindPDF
	KindWorkbook
	KindCSV
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindWorkbook:
		return "workbook"
	case KindCSV:
		return "csv"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// Options controls document loading.
type Options struct {
	// Password decrypts protected PDFs. Ignored for other kinds.
	Password string
}

// Document is a loaded statement. PDF pages are decoded lazily on first
// access; spreadsheet and OCR pages are materialized at load time.
type Document struct {
	kind Kind

	mu    sync.Mutex
	pages []*Page
	dec   pageDecoder // nil once every page is materialized
}

// pageDecoder produces page i on demand. PDF documents install one so a
// hundred-page statement does not pay full decode cost up front.
type pageDecoder interface {
	numPages() int
	decode(i int) (*Page, error)
}

// Load sniffs the format of data and decodes it. It returns
// statement.ErrAuthentication for a wrong or missing PDF password and
// statement.ErrUnreadableDocument when the bytes match no supported format or
// are corrupt.
func Load(data []byte, opts Options) (*Document, error) {
	switch sniff(data) {
	case KindPDF:
		return loadPDF(data, opts.Password)
	case KindWorkbook:
		return loadWorkbook(data)
	case KindImage:
		return loadImage(data)
	case KindCSV:
		return loadCSV(data)
	}
	return nil, fmt.Errorf("unsupported file type: %w", statement.ErrUnreadableDocument)
}

// NewDocument builds an in-memory document from pre-built pages. Used by
// extractor tests and the OCR path.
func NewDocument(kind Kind, pages ...*Page) *Document {
	return &Document{kind: kind, pages: pages}
}

// Kind reports the sniffed document format.
func (d *Document) Kind() Kind { return d.kind }

// NumPages reports the page count without decoding anything.
func (d *Document) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dec != nil {
		return d.dec.numPages()
	}
	return len(d.pages)
}

// Page returns page i (zero-based), decoding it on first access.
func (d *Document) Page(i int) (*Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dec == nil {
		if i < 0 || i >= len(d.pages) {
			return nil, fmt.Errorf("page %d out of range", i)
		}
		return d.pages[i], nil
	}

	if i < 0 || i >= d.dec.numPages() {
		return nil, fmt.Errorf("page %d out of range", i)
	}
	if len(d.pages) < d.dec.numPages() {
		d.pages = append(d.pages, make([]*Page, d.dec.numPages()-len(d.pages))...)
	}
	if d.pages[i] == nil {
		p, err := d.dec.decode(i)
		if err != nil {
			return nil, err
		}
		d.pages[i] = p
	}
	return d.pages[i], nil
}

func sniff(data []byte) Kind {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return KindPDF
	case bytes.HasPrefix(data, []byte{0x50, 0x4b, 0x03, 0x04}),
		bytes.HasPrefix(data, []byte{0xd0, 0xcf, 0x11, 0xe0}): // legacy xls container
		return KindWorkbook
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}),
		bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}),
		bytes.HasPrefix(data, []byte("BM")):
		return KindImage
	case looksTextual(data):
		return KindCSV
	}
	return KindUnknown
}

// looksTextual accepts valid UTF-8 with no NUL bytes, which covers every CSV
// and TSV export the banks produce.
func looksTextual(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	// The sample may end mid-rune; back off to a rune boundary first.
	origLen := len(sample)
	for len(sample) > 0 && !utf8.Valid(sample) {
		if origLen-len(sample) >= utf8.UTFMax {
			return false
		}
		sample = sample[:len(sample)-1]
	}
	return len(sample) > 0
}
