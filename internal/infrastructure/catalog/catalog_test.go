package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/backend/internal/domain/shop"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewFileCatalog(t *testing.T) {
	t.Run("loads products from file", func(t *testing.T) {
		path := writeCatalog(t, `[
			{"id": 1, "name": "Dancing Emote", "price": 1999, "image": "/img/dancing.png", "download_asset": "dancing.zip"},
			{"id": 2, "name": "Wave Emote", "price": 999, "image": "/img/wave.png"}
		]`)

		cat, err := NewFileCatalog(path)
		require.NoError(t, err)

		p, err := cat.Get(1)
		require.NoError(t, err)
		assert.Equal(t, "Dancing Emote", p.Name)
		assert.Equal(t, int64(1999), p.PriceCents)
		assert.Equal(t, "dancing.zip", p.DownloadAsset)
		assert.True(t, p.HasDownload())

		p2, err := cat.Get(2)
		require.NoError(t, err)
		assert.False(t, p2.HasDownload())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileCatalog(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeCatalog(t, `{"not": "an array"`)
		_, err := NewFileCatalog(path)
		require.Error(t, err)
	})

	t.Run("duplicate product id", func(t *testing.T) {
		path := writeCatalog(t, `[
			{"id": 1, "name": "A", "price": 100},
			{"id": 1, "name": "B", "price": 200}
		]`)
		_, err := NewFileCatalog(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate product id")
	})

	t.Run("rejects asset path with separators", func(t *testing.T) {
		path := writeCatalog(t, `[
			{"id": 1, "name": "A", "price": 100, "download_asset": "../etc/passwd"}
		]`)
		_, err := NewFileCatalog(path)
		require.Error(t, err)
	})
}

func TestFileCatalogGet(t *testing.T) {
	path := writeCatalog(t, `[{"id": 5, "name": "Heart Emote", "price": 499}]`)
	cat, err := NewFileCatalog(path)
	require.NoError(t, err)

	_, err = cat.Get(99)
	assert.True(t, errors.Is(err, shop.ErrProductNotFound))
}

func TestFileCatalogProducts(t *testing.T) {
	path := writeCatalog(t, `[
		{"id": 3, "name": "C", "price": 300},
		{"id": 1, "name": "A", "price": 100},
		{"id": 2, "name": "B", "price": 200}
	]`)
	cat, err := NewFileCatalog(path)
	require.NoError(t, err)

	products := cat.Products()
	require.Len(t, products, 3)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 2, products[1].ID)
	assert.Equal(t, 3, products[2].ID)
}

func TestFileCatalogReloadKeepsOldSetOnError(t *testing.T) {
	path := writeCatalog(t, `[{"id": 1, "name": "A", "price": 100}]`)
	cat, err := NewFileCatalog(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	require.Error(t, cat.Reload())

	// Old products remain served.
	p, err := cat.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)
}
