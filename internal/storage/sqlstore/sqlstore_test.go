package sqlstore_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage/sqlstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entryKey = "inventory_offline_products"

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	store := sqlstore.New(db)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS offline_entries")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := store.Migrate(t.Context())

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		// Arrange
		dbErr := errors.New("permission denied")
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS offline_entries")).
			WillReturnError(dbErr)

		// Act
		err := store.Migrate(t.Context())

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStoreGet(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	store := sqlstore.New(db)
	expectedSQL := regexp.QuoteMeta(`SELECT entry_value FROM offline_entries WHERE entry_key = $1`)

	t.Run("Success - Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(expectedSQL).WithArgs(entryKey).
			WillReturnRows(sqlmock.NewRows([]string{"entry_value"}).AddRow(`[{"id":1}]`))

		// Act
		value, found, err := store.Get(t.Context(), entryKey)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `[{"id":1}]`, string(value))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Missing Key", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(expectedSQL).WithArgs(entryKey).
			WillReturnRows(sqlmock.NewRows([]string{"entry_value"}))

		// Act
		value, found, err := store.Get(t.Context(), entryKey)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error - Query Failed", func(t *testing.T) {
		// Arrange
		dbErr := errors.New("connection reset")
		mock.ExpectQuery(expectedSQL).WithArgs(entryKey).WillReturnError(dbErr)

		// Act
		_, found, err := store.Get(t.Context(), entryKey)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, dbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error - Invalid Key", func(t *testing.T) {
		// Act
		_, _, err := store.Get(t.Context(), "../etc/passwd")

		// Assert
		assert.ErrorIs(t, err, storage.ErrInvalidKey)
	})
}

func TestStorePut(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	store := sqlstore.New(db)
	expectedSQL := regexp.QuoteMeta(`INSERT INTO offline_entries (entry_key, entry_value, updated_at)`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(expectedSQL).
			WithArgs(entryKey, `[]`, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := store.Put(t.Context(), entryKey, []byte(`[]`))

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		// Arrange
		dbErr := errors.New("disk full")
		mock.ExpectExec(expectedSQL).
			WithArgs(entryKey, `[]`, sqlmock.AnyArg()).
			WillReturnError(dbErr)

		// Act
		err := store.Put(t.Context(), entryKey, []byte(`[]`))

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
