package snapklik

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skinsift/backend/internal/domain"
)

func snapshotPage(script string) string {
	return `<html><head><script>` + script + `</script></head><body></body></html>`
}

func TestParseSnapshot(t *testing.T) {
	t.Run("decodes embedded product objects", func(t *testing.T) {
		page := snapshotPage(`var data = [{"skid":"S1","text":"Hydrating Serum","categories":["Skin Care","Serums"],"brand":"Acme","price":1999,"slug":"hydrating-serum"}];`)

		products, err := ParseSnapshot(strings.NewReader(page))
		require.NoError(t, err)
		require.Len(t, products, 1)

		assert.Equal(t, "S1", products[0]["skid"])
		assert.Equal(t, "Hydrating Serum", products[0]["text"])
		assert.Equal(t, "Acme", products[0]["brand"])
		assert.Equal(t, float64(1999), products[0]["price"])
	})

	t.Run("salvages fields from broken fragments", func(t *testing.T) {
		// Not valid JSON (bare identifier), but the individual fields are
		// still extractable.
		page := snapshotPage(`x = {"v":bare,"skid":"S2","text":"Gentle Toner","categories":["Face"],"price":2500};`)

		products, err := ParseSnapshot(strings.NewReader(page))
		require.NoError(t, err)
		require.Len(t, products, 1)

		assert.Equal(t, "S2", products[0]["skid"])
		assert.Equal(t, "Gentle Toner", products[0]["text"])
		assert.Equal(t, float64(2500), products[0]["price"])
		assert.Equal(t, []any{"Face"}, products[0]["categories"])
	})

	t.Run("empty category list still salvages", func(t *testing.T) {
		page := snapshotPage(`x = {"v":bare,"skid":"S3","text":"Mystery Cream","categories":[],"price":bad};`)

		products, err := ParseSnapshot(strings.NewReader(page))
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "S3", products[0]["skid"])
	})

	t.Run("pairs scattered fields when no objects survive", func(t *testing.T) {
		page := snapshotPage(`
			"skid":"A1" "text":"Foaming Cleanser" "categories":["Body"]
			"skid":"A2" "text":"Night Cream" "categories":["Face"]
		`)

		products, err := ParseSnapshot(strings.NewReader(page))
		require.NoError(t, err)
		require.Len(t, products, 2)

		assert.Equal(t, "A1", products[0]["skid"])
		assert.Equal(t, "Foaming Cleanser", products[0]["text"])
		assert.Equal(t, []any{"Face"}, products[1]["categories"])
	})

	t.Run("pairs skid and text when categories are missing", func(t *testing.T) {
		page := snapshotPage(`"skid":"B1" "text":"Solo Serum"`)

		products, err := ParseSnapshot(strings.NewReader(page))
		require.NoError(t, err)
		require.Len(t, products, 1)

		assert.Equal(t, "B1", products[0]["skid"])
		assert.Equal(t, "Solo Serum", products[0]["text"])
	})

	t.Run("empty page yields no products and no error", func(t *testing.T) {
		products, err := ParseSnapshot(strings.NewReader("<html><body>nothing here</body></html>"))
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestLoadSnapshot(t *testing.T) {
	t.Run("reads products from a saved page", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "debug.html")
		page := snapshotPage(`[{"skid":"S1","text":"Serum","categories":["Skin Care"]}]`)
		require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

		products, err := LoadSnapshot(path)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "S1", products[0]["skid"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.html"))
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})
}
