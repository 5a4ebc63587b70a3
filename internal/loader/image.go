package loader

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/stmtkit/stmtkit/internal/statement"
)

// ErrOCRNotEnabled is returned when a scanned statement is uploaded to a
// binary built without the ocr tag.
var ErrOCRNotEnabled = errors.New("ocr support not compiled in (rebuild with -tags ocr)")

func loadImage(data []byte) (*Document, error) {
	text, err := recognizeImage(data)
	if err != nil {
		return nil, fmt.Errorf("scanned statement: %v: %w", err, statement.ErrUnreadableDocument)
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = cleanText(fixOCRLine(line)); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("ocr produced no text: %w", statement.ErrUnreadableDocument)
	}
	return NewDocument(KindImage, NewTextPage(lines...)), nil
}

// fixOCRLine repairs the usual tesseract confusions, but only inside tokens
// that look numeric, so descriptions keep their letters.
func fixOCRLine(line string) string {
	fields := strings.Fields(line)
	for i, f := range fields {
		if !numericToken(f) {
			continue
		}
		fields[i] = strings.Map(func(r rune) rune {
			switch r {
			case 'O', 'o':
				return '0'
			case 'l', 'I':
				return '1'
			case 'S':
				return '5'
			case 'B':
				return '8'
			}
			return r
		}, f)
	}
	return strings.Join(fields, " ")
}

// numericToken reports whether s contains at least one digit and otherwise
// only digit-confusable letters and numeric punctuation.
func numericToken(s string) bool {
	hasDigit := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune("OolISB.,/-:", r):
		default:
			return false
		}
	}
	return hasDigit
}
