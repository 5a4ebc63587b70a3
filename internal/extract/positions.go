package extract

import (
	"sort"
	"strings"

	"github.com/stmtkit/stmtkit/internal/loader"
)

// wordLines groups a page's words into baseline lines. Words arrive sorted
// in reading order, so a gap in Y starts a new line.
func wordLines(words []loader.Word) [][]loader.Word {
	const tol = 2.5
	var lines [][]loader.Word
	var cur []loader.Word
	var curY float64
	for _, w := range words {
		if len(cur) > 0 && w.Y-curY > tol {
			lines = append(lines, cur)
			cur = nil
		}
		if len(cur) == 0 {
			curY = w.Y
		}
		cur = append(cur, w)
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func lineText(ws []loader.Word) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// headerBand anchors a field to the X position of its header label.
type headerBand struct {
	field Field
	x     float64
}

// bandSpec lists the header label aliases (lowercased) that denote a field.
type bandSpec struct {
	field   Field
	aliases []string
}

// findBands scans one line's words for header labels and returns the
// recognized bands sorted left to right. Arabic aliases survive because the
// match is on the raw word text.
func findBands(ws []loader.Word, specs []bandSpec) []headerBand {
	var bands []headerBand
	seen := make(map[Field]bool)
	for _, w := range ws {
		txt := strings.ToLower(w.Text)
		for _, spec := range specs {
			if seen[spec.field] || !matchesAlias(txt, spec.aliases) {
				continue
			}
			bands = append(bands, headerBand{field: spec.field, x: w.X})
			seen[spec.field] = true
			break
		}
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i].x < bands[j].x })
	return bands
}

func matchesAlias(txt string, aliases []string) bool {
	for _, a := range aliases {
		if txt == a || (len(a) >= 4 && strings.Contains(txt, a)) {
			return true
		}
	}
	return false
}

// bandForX treats band positions as left column boundaries and returns the
// index of the band a word at x falls under, or -1 left of the first band.
// slack widens each boundary to absorb ragged alignment.
func bandForX(bands []headerBand, x, slack float64) int {
	idx := -1
	for i, b := range bands {
		if x >= b.x-slack {
			idx = i
		}
	}
	return idx
}

// nearestBandX returns the band whose label X is closest to x, or -1 when
// none is within tol.
func nearestBandX(bands []headerBand, x, tol float64) int {
	best, bestDist := -1, tol
	for i, b := range bands {
		d := b.x - x
		if d < 0 {
			d = -d
		}
		if d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
