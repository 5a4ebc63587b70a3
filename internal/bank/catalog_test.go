package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Run("get known profile", func(t *testing.T) {
		c := Default()
		p, ok := c.Get("rakbank")
		require.True(t, ok)
		assert.Equal(t, "RAKBank", p.DisplayName)
		assert.True(t, p.SupportsPassword)
	})

	t.Run("get unknown profile", func(t *testing.T) {
		_, ok := Default().Get("nope")
		assert.False(t, ok)
	})

	t.Run("list preserves order", func(t *testing.T) {
		c := NewCatalog(Profile{ID: "b"}, Profile{ID: "a"})
		list := c.List()
		require.Len(t, list, 2)
		assert.Equal(t, "b", list[0].ID)
		assert.Equal(t, "a", list[1].ID)
	})

	t.Run("duplicate id panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewCatalog(Profile{ID: "x"}, Profile{ID: "x"})
		})
	})

	t.Run("spreadsheet profile is not a document source", func(t *testing.T) {
		p, ok := Default().Get("spreadsheet")
		require.True(t, ok)
		assert.Equal(t, SourceSpreadsheet, p.Source)
	})
}
