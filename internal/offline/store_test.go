package offline_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/inventory-client/internal/errors"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/aaravmahajanofficial/inventory-client/internal/offline"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage/filestore"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T, dir string) *offline.Store {
	t.Helper()

	entries, err := filestore.New(dir)
	require.NoError(t, err)

	return offline.New(entries, offline.DefaultKey)
}

func mouseRequest() *models.CreateProductRequest {
	return &models.CreateProductRequest{
		Name:        "Mouse",
		Description: "Wireless",
		Price:       decimal.RequireFromString("19.999"),
		Category:    "Accesorios",
		Stock:       5,
	}
}

func TestStoreAdd(t *testing.T) {
	t.Run("Success - Echoes Input With Unique IDs", func(t *testing.T) {
		// Arrange
		store := newFileStore(t, t.TempDir())
		store.Load(t.Context())
		before := time.Now().UTC().Truncate(time.Millisecond)

		// Act
		first, err := store.Add(t.Context(), mouseRequest())
		require.NoError(t, err)
		second, err := store.Add(t.Context(), mouseRequest())
		require.NoError(t, err)

		// Assert
		assert.Equal(t, "Mouse", first.Name)
		assert.Equal(t, "Wireless", first.Description)
		assert.Equal(t, "Accesorios", first.Category)
		assert.Equal(t, 5, first.Stock)
		assert.True(t, first.Price.Equal(decimal.RequireFromString("20.00")), "price is rounded to cents")
		assert.NotEqual(t, first.ID, second.ID)
		assert.False(t, first.CreatedAt.Before(before))
		assert.Len(t, store.Snapshot(), 2)
	})

	t.Run("Failure - Persist Error Leaves List Untouched", func(t *testing.T) {
		// Arrange
		entries := mocks.NewEntryStore(t)
		entries.On("Get", mock.Anything, offline.DefaultKey).Return(nil, false, nil).Once()
		entries.On("Put", mock.Anything, offline.DefaultKey, mock.Anything).Return(errors.New("quota exceeded")).Once()
		store := offline.New(entries, offline.DefaultKey)
		store.Load(t.Context())

		// Act
		_, err := store.Add(t.Context(), mouseRequest())

		// Assert
		require.Error(t, err)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeStorage))
		assert.Empty(t, store.Snapshot())
	})
}

func TestStoreLoad(t *testing.T) {
	t.Run("Success - Round Trip Through Fresh Store", func(t *testing.T) {
		// Arrange
		dir := t.TempDir()
		writer := newFileStore(t, dir)
		writer.Load(t.Context())
		created, err := writer.Add(t.Context(), mouseRequest())
		require.NoError(t, err)

		// Act
		reader := newFileStore(t, dir)
		loaded := reader.Load(t.Context())

		// Assert
		require.Len(t, loaded, 1)
		assert.Equal(t, created.ID, loaded[0].ID)
		assert.Equal(t, created.Name, loaded[0].Name)
		assert.Equal(t, created.Description, loaded[0].Description)
		assert.True(t, created.Price.Equal(loaded[0].Price))
		assert.Equal(t, created.Category, loaded[0].Category)
		assert.Equal(t, created.Stock, loaded[0].Stock)
		assert.True(t, created.CreatedAt.Equal(loaded[0].CreatedAt))
	})

	t.Run("Success - New IDs Stay Ahead Of Persisted IDs", func(t *testing.T) {
		// Arrange
		future := time.Now().Add(24 * time.Hour).UnixMilli()
		entries := mocks.NewEntryStore(t)
		payload := `[{"id":` + decimal.NewFromInt(future).String() + `,"productName":"Old","productPrice":1,"productCategory":"x","productStock":1}]`
		entries.On("Get", mock.Anything, offline.DefaultKey).Return([]byte(payload), true, nil).Once()
		entries.On("Put", mock.Anything, offline.DefaultKey, mock.Anything).Return(nil).Once()
		store := offline.New(entries, offline.DefaultKey)
		store.Load(t.Context())

		// Act
		created, err := store.Add(t.Context(), mouseRequest())

		// Assert
		require.NoError(t, err)
		assert.Greater(t, created.ID, future)
	})

	t.Run("Success - Corrupt Entry Yields Empty List", func(t *testing.T) {
		// Arrange
		entries := mocks.NewEntryStore(t)
		entries.On("Get", mock.Anything, offline.DefaultKey).Return([]byte(`{not json`), true, nil).Once()
		store := offline.New(entries, offline.DefaultKey)

		// Act
		loaded := store.Load(t.Context())

		// Assert
		assert.NotNil(t, loaded)
		assert.Empty(t, loaded)
	})

	t.Run("Success - Read Error Yields Empty List", func(t *testing.T) {
		// Arrange
		entries := mocks.NewEntryStore(t)
		entries.On("Get", mock.Anything, offline.DefaultKey).Return(nil, false, errors.New("io error")).Once()
		store := offline.New(entries, offline.DefaultKey)

		// Act
		loaded := store.Load(t.Context())

		// Assert
		assert.Empty(t, loaded)
	})
}

func TestStoreUpdate(t *testing.T) {
	t.Run("Success - Partial Merge Keeps CreatedAt", func(t *testing.T) {
		// Arrange
		store := newFileStore(t, t.TempDir())
		store.Load(t.Context())
		created, err := store.Add(t.Context(), mouseRequest())
		require.NoError(t, err)
		stock := 42

		// Act
		updated, err := store.Update(t.Context(), created.ID, &models.UpdateProductRequest{Stock: &stock})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 42, updated.Stock)
		assert.Equal(t, created.Name, updated.Name)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
		assert.Equal(t, 42, store.Snapshot()[0].Stock)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		store := newFileStore(t, t.TempDir())
		store.Load(t.Context())
		name := "Ghost"

		// Act
		_, err := store.Update(t.Context(), 12345, &models.UpdateProductRequest{Name: &name})

		// Assert
		require.Error(t, err)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
		assert.True(t, strings.Contains(err.Error(), "12345"))
	})
}

func TestStoreRemove(t *testing.T) {
	t.Run("Success - Idempotent", func(t *testing.T) {
		// Arrange
		store := newFileStore(t, t.TempDir())
		store.Load(t.Context())
		kept, err := store.Add(t.Context(), mouseRequest())
		require.NoError(t, err)
		removed, err := store.Add(t.Context(), mouseRequest())
		require.NoError(t, err)

		// Act
		require.NoError(t, store.Remove(t.Context(), removed.ID))
		afterFirst := store.Snapshot()
		require.NoError(t, store.Remove(t.Context(), removed.ID))
		afterSecond := store.Snapshot()

		// Assert
		assert.Equal(t, afterFirst, afterSecond)
		require.Len(t, afterSecond, 1)
		assert.Equal(t, kept.ID, afterSecond[0].ID)
	})

	t.Run("Success - Absent ID Still Persists", func(t *testing.T) {
		// Arrange
		entries := mocks.NewEntryStore(t)
		entries.On("Get", mock.Anything, offline.DefaultKey).Return(nil, false, nil).Once()
		entries.On("Put", mock.Anything, offline.DefaultKey, []byte(`[]`)).Return(nil).Once()
		store := offline.New(entries, offline.DefaultKey)
		store.Load(t.Context())

		// Act
		err := store.Remove(t.Context(), 99)

		// Assert
		require.NoError(t, err)
	})
}

func TestStoreGet(t *testing.T) {
	t.Run("Success - Found", func(t *testing.T) {
		// Arrange
		store := newFileStore(t, t.TempDir())
		store.Load(t.Context())
		created, err := store.Add(t.Context(), mouseRequest())
		require.NoError(t, err)

		// Act
		got, err := store.Get(created.ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		store := newFileStore(t, t.TempDir())
		store.Load(t.Context())

		// Act
		_, err := store.Get(7)

		// Assert
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNotFound))
	})
}
