package loader

import (
	"sort"
	"strings"

	"github.com/dslipak/pdf"
)

// Ruled tables are recovered from the thin filled rectangles statement PDFs
// draw as cell borders. The approach mirrors classic line-based table
// detection: collect horizontal and vertical ruling segments, cluster their
// positions, and drop each word into the cell its center falls in.

const (
	rulingThickness  = 3.0 // max thickness for a rect to count as a line
	minRulingLength  = 10.0
	clusterTolerance = 3.0
)

type lineSeg struct {
	pos        float64 // y for horizontal, x for vertical
	from, to   float64
	horizontal bool
}

func rulingSegments(rects []pdf.Rect, height float64) []lineSeg {
	var segs []lineSeg
	for _, r := range rects {
		w := r.Max.X - r.Min.X
		h := r.Max.Y - r.Min.Y
		yTop := height - r.Max.Y
		yBot := height - r.Min.Y
		switch {
		case h <= rulingThickness && w >= minRulingLength:
			segs = append(segs, lineSeg{pos: (yTop + yBot) / 2, from: r.Min.X, to: r.Max.X, horizontal: true})
		case w <= rulingThickness && h >= minRulingLength:
			segs = append(segs, lineSeg{pos: (r.Min.X + r.Max.X) / 2, from: yTop, to: yBot})
		}
	}
	return segs
}

func detectGrids(words []Word, segs []lineSeg) [][][]string {
	var hs, vs []float64
	for _, s := range segs {
		if s.horizontal {
			hs = append(hs, s.pos)
		} else {
			vs = append(vs, s.pos)
		}
	}
	ys := cluster(hs, clusterTolerance)
	xs := cluster(vs, clusterTolerance)
	if len(ys) < 2 || len(xs) < 2 {
		return nil
	}

	nRows, nCols := len(ys)-1, len(xs)-1
	cells := make([][][]string, nRows)
	for r := range cells {
		cells[r] = make([][]string, nCols)
	}

	for _, w := range words {
		cx := w.X + w.W/2
		r := bandIndex(ys, w.Y)
		c := bandIndex(xs, cx)
		if r < 0 || c < 0 {
			continue
		}
		cells[r][c] = append(cells[r][c], w.Text)
	}

	table := make([][]string, nRows)
	empty := true
	for r := range cells {
		table[r] = make([]string, nCols)
		for c := range cells[r] {
			table[r][c] = strings.Join(cells[r][c], " ")
			if table[r][c] != "" {
				empty = false
			}
		}
	}
	if empty {
		return nil
	}
	return [][][]string{table}
}

// cluster merges positions closer than tol and returns the sorted cluster
// midpoints.
func cluster(positions []float64, tol float64) []float64 {
	if len(positions) == 0 {
		return nil
	}
	sorted := make([]float64, len(positions))
	copy(sorted, positions)
	sort.Float64s(sorted)

	var out []float64
	start, prev := sorted[0], sorted[0]
	for _, p := range sorted[1:] {
		if p-prev > tol {
			out = append(out, (start+prev)/2)
			start = p
		}
		prev = p
	}
	out = append(out, (start+prev)/2)
	return out
}

// bandIndex returns the index of the band of bounds containing v, or -1 when
// v falls outside the grid.
func bandIndex(bounds []float64, v float64) int {
	for i := 0; i < len(bounds)-1; i++ {
		if v >= bounds[i] && v < bounds[i+1] {
			return i
		}
	}
	return -1
}
