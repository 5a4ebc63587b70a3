package loader

import (
	"bytes"
	"fmt"

	"github.com/dslipak/pdf"

	"github.com/stmtkit/stmtkit/internal/statement"
)

func loadPDF(data []byte, password string) (*Document, error) {
	// The reader calls pw for password candidates until it returns "".
	// Offer the supplied password exactly once.
	offered := false
	pw := func() string {
		if offered {
			return ""
		}
		offered = true
		return password
	}

	r, err := pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), pw)
	if err != nil {
		if err == pdf.ErrInvalidPassword {
			return nil, fmt.Errorf("open pdf: %w", statement.ErrAuthentication)
		}
		return nil, fmt.Errorf("open pdf: %v: %w", err, statement.ErrUnreadableDocument)
	}
	return &Document{kind: KindPDF, dec: &pdfDecoder{r: r}}, nil
}

type pdfDecoder struct {
	r *pdf.Reader
}

func (d *pdfDecoder) numPages() int { return d.r.NumPage() }

func (d *pdfDecoder) decode(i int) (p *Page, err error) {
	// Malformed content streams make the pdf package panic rather than
	// return an error; statement PDFs are wild enough to hit this.
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = fmt.Errorf("decode pdf page %d: %v: %w", i+1, r, statement.ErrUnreadableDocument)
		}
	}()

	pg := d.r.Page(i + 1)
	if pg.V.IsNull() {
		return nil, fmt.Errorf("decode pdf page %d: missing page object: %w", i+1, statement.ErrUnreadableDocument)
	}

	height := pageHeight(pg)
	content := pg.Content()

	words := mergeWords(content.Text, height)
	page := &Page{words: words, rects: rulingSegments(content.Rect, height)}
	return page, nil
}

func pageHeight(pg pdf.Page) float64 {
	box := pg.V.Key("MediaBox")
	if box.Len() == 4 {
		return box.Index(3).Float64() - box.Index(1).Float64()
	}
	return 842 // A4 default
}

// mergeWords joins the per-glyph text runs the pdf package emits into words,
// flipping Y so the page origin sits at the top-left corner.
func mergeWords(texts []pdf.Text, height float64) []Word {
	if len(texts) == 0 {
		return nil
	}

	var words []Word
	var cur *Word
	var lastRight float64
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		y := height - t.Y
		gap := gapThreshold(t.FontSize)
		if cur != nil && abs(y-cur.Y) <= baselineTolerance && t.X >= lastRight-0.5 && t.X-lastRight <= gap {
			cur.Text += t.S
			cur.W = t.X + t.W - cur.X
		} else {
			words = append(words, Word{})
			cur = &words[len(words)-1]
			*cur = Word{X: t.X, Y: y, W: t.W, Text: t.S}
		}
		lastRight = t.X + t.W
	}

	out := words[:0]
	for _, w := range words {
		w.Text = cleanText(w.Text)
		if w.Text != "" {
			out = append(out, w)
		}
	}
	sortWords(out)
	return out
}

// gapThreshold is the widest inter-glyph gap still considered part of the
// same word. Proportional to the font size, with a floor for tiny fonts.
func gapThreshold(fontSize float64) float64 {
	g := fontSize * 0.22
	if g < 1.0 {
		g = 1.0
	}
	return g
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
