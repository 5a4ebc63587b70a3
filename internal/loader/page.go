package loader

import (
	"sort"
	"strings"
)

// Word is a positioned run of text on a PDF page. Coordinates are in points
// with the origin at the top-left corner, X growing right and Y growing down,
// so reading order is ascending (Y, X).
type Word struct {
	X, Y float64 // top-left corner
	W    float64 // width
	Text string
}

// Right returns the X coordinate of the word's right edge.
func (w Word) Right() float64 { return w.X + w.W }

// Page is one unit of a document: a PDF page, a workbook sheet or an OCR'd
// image. Text, word and table views are all available; which ones carry data
// depends on the document kind.
type Page struct {
	name  string // sheet name for workbook pages
	words []Word
	rows  [][]string // spreadsheet rows
	rects []lineSeg  // ruling lines, for grid detection

	lines  []string
	tables [][][]string

	linesBuilt  bool
	tablesBuilt bool
}

// NewTextPage builds a page from plain text lines. Word positions are not
// available on such pages.
func NewTextPage(lines ...string) *Page {
	return &Page{lines: lines, linesBuilt: true}
}

// NewWordPage builds a page from positioned words.
func NewWordPage(words ...Word) *Page {
	sortWords(words)
	return &Page{words: words}
}

// NewTablePage builds a page whose grid tables are given directly.
func NewTablePage(tables ...[][]string) *Page {
	return &Page{tables: tables, tablesBuilt: true}
}

// NewSheetPage builds a page from spreadsheet rows.
func NewSheetPage(name string, rows [][]string) *Page {
	return &Page{name: name, rows: rows}
}

// Name returns the sheet name for workbook pages, "" otherwise.
func (p *Page) Name() string { return p.name }

// Words returns the positioned words of the page in reading order. Empty for
// text-only and workbook pages.
func (p *Page) Words() []Word { return p.words }

// Rows returns the raw spreadsheet rows. Empty for PDF pages.
func (p *Page) Rows() [][]string { return p.rows }

// Lines returns the page text as lines in reading order. For word pages the
// lines are assembled by grouping words on a shared baseline; for workbook
// pages each row becomes one tab-free space-joined line.
func (p *Page) Lines() []string {
	if p.linesBuilt {
		return p.lines
	}
	p.linesBuilt = true
	switch {
	case len(p.words) > 0:
		p.lines = assembleLines(p.words)
	case len(p.rows) > 0:
		for _, row := range p.rows {
			p.lines = append(p.lines, strings.TrimSpace(strings.Join(row, " ")))
		}
	}
	return p.lines
}

// Tables returns the grid tables detected on the page. PDF pages need ruling
// lines for a grid to be found; workbook pages expose their rows as a single
// table.
func (p *Page) Tables() [][][]string {
	if p.tablesBuilt {
		return p.tables
	}
	p.tablesBuilt = true
	switch {
	case len(p.rows) > 0:
		p.tables = [][][]string{p.rows}
	case len(p.words) > 0 && len(p.rects) > 0:
		p.tables = detectGrids(p.words, p.rects)
	}
	return p.tables
}

const baselineTolerance = 2.5

// assembleLines groups words sharing a baseline and joins them left to right.
func assembleLines(words []Word) []string {
	if len(words) == 0 {
		return nil
	}
	sorted := make([]Word, len(words))
	copy(sorted, words)
	sortWords(sorted)

	var lines []string
	var cur []string
	curY := sorted[0].Y
	for _, w := range sorted {
		if w.Y-curY > baselineTolerance {
			lines = append(lines, strings.Join(cur, " "))
			cur = cur[:0]
			curY = w.Y
		}
		cur = append(cur, w.Text)
	}
	lines = append(lines, strings.Join(cur, " "))
	return lines
}

func sortWords(words []Word) {
	sort.SliceStable(words, func(i, j int) bool {
		if d := words[i].Y - words[j].Y; d < -baselineTolerance || d > baselineTolerance {
			return words[i].Y < words[j].Y
		}
		return words[i].X < words[j].X
	})
}
