package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aaravmahajanofficial/inventory-client/internal/storage"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage/filestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Missing Entry", func(t *testing.T) {
		// Arrange
		store, err := filestore.New(t.TempDir())
		require.NoError(t, err)

		// Act
		value, found, err := store.Get(ctx, "inventory_offline_products")

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("Success - Put Then Get", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		store, err := filestore.New(dir)
		require.NoError(t, err)

		// Act
		require.NoError(t, store.Put(ctx, "inventory_offline_products", []byte(`[{"id":7}]`)))
		require.NoError(t, store.Put(ctx, "inventory_offline_products", []byte(`[{"id":8}]`)))
		value, found, err := store.Get(ctx, "inventory_offline_products")

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `[{"id":8}]`, string(value))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp files must not be left behind")
		assert.FileExists(t, filepath.Join(dir, "inventory_offline_products.json"))
	})

	t.Run("Failure - Invalid Key", func(t *testing.T) {
		// Arrange
		store, err := filestore.New(t.TempDir())
		require.NoError(t, err)

		// Act
		err = store.Put(ctx, "../escape", []byte(`[]`))

		// Assert
		assert.ErrorIs(t, err, storage.ErrInvalidKey)
	})

	t.Run("Failure - Empty Directory", func(t *testing.T) {
		_, err := filestore.New("")
		assert.Error(t, err)
	})
}
