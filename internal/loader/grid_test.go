package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCluster(t *testing.T) {
	t.Run("merges nearby positions", func(t *testing.T) {
		got := cluster([]float64{100, 101.5, 200, 201, 300}, 3)
		require.Len(t, got, 3)
		assert.InDelta(t, 100.75, got[0], 0.01)
		assert.InDelta(t, 200.5, got[1], 0.01)
		assert.InDelta(t, 300, got[2], 0.01)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, cluster(nil, 3))
	})
}

func TestDetectGrids(t *testing.T) {
	// 2x2 grid: rows at y 0-20 and 20-40, columns at x 0-100 and 100-200.
	segs := []lineSeg{
		{pos: 0, horizontal: true},
		{pos: 20, horizontal: true},
		{pos: 40, horizontal: true},
		{pos: 0},
		{pos: 100},
		{pos: 200},
	}
	words := []Word{
		{X: 10, Y: 10, W: 30, Text: "Date"},
		{X: 110, Y: 10, W: 30, Text: "Amount"},
		{X: 10, Y: 30, W: 30, Text: "01/02/2025"},
		{X: 110, Y: 30, W: 20, Text: "1,0"},
		{X: 132, Y: 30, W: 20, Text: "00.00"},
	}

	tables := detectGrids(words, segs)
	require.Len(t, tables, 1)
	table := tables[0]
	require.Len(t, table, 2)
	assert.Equal(t, []string{"Date", "Amount"}, table[0])
	assert.Equal(t, []string{"01/02/2025", "1,0 00.00"}, table[1])
}

func TestDetectGridsNeedsRulings(t *testing.T) {
	words := []Word{{X: 10, Y: 10, W: 30, Text: "Date"}}
	assert.Nil(t, detectGrids(words, []lineSeg{{pos: 0, horizontal: true}}))
}
