package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stmtkit/stmtkit/internal/statement"
)

func loadWorkbook(data []byte) (*Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %v: %w", err, statement.ErrUnreadableDocument)
	}
	defer f.Close()

	var pages []*Page
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %v: %w", sheet, err, statement.ErrUnreadableDocument)
		}
		if len(rows) == 0 {
			continue
		}
		for i := range rows {
			for j := range rows[i] {
				rows[i][j] = cleanText(rows[i][j])
			}
		}
		pages = append(pages, NewSheetPage(sheet, rows))
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("workbook has no populated sheets: %w", statement.ErrUnreadableDocument)
	}
	return NewDocument(KindWorkbook, pages...), nil
}

func loadCSV(data []byte) (*Document, error) {
	text := strings.TrimPrefix(string(data), "\uFEFF")

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = detectDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %v: %w", err, statement.ErrUnreadableDocument)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file is empty: %w", statement.ErrUnreadableDocument)
	}
	for i := range records {
		for j := range records[i] {
			records[i][j] = cleanText(records[i][j])
		}
	}
	return NewDocument(KindCSV, NewSheetPage("", records)), nil
}

// detectDelimiter picks the candidate separator that appears most
// consistently across the first lines of the file.
func detectDelimiter(text string) rune {
	lines := strings.Split(text, "\n")
	if len(lines) > 20 {
		lines = lines[:20]
	}

	best, bestScore := ',', 0
	for _, cand := range []rune{',', ';', '\t', '|'} {
		counts := map[int]int{}
		for _, line := range lines {
			if line = strings.TrimSpace(line); line == "" {
				continue
			}
			if n := strings.Count(line, string(cand)); n > 0 {
				counts[n]++
			}
		}
		// Score the most common non-zero count; consistent column
		// structure beats raw frequency.
		for n, freq := range counts {
			if score := freq * n; score > bestScore {
				best, bestScore = cand, score
			}
		}
	}
	return best
}
