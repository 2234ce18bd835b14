package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const DefaultQueryTimeout = 5 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS offline_entries (
	entry_key TEXT PRIMARY KEY,
	entry_value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Store is an EntryStore over any database/sql driver that understands
// $N placeholders and ON CONFLICT upserts (sqlite3 and postgres both do).
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open maps the configured driver name to a registered database/sql driver,
// wraps it with otelsql and creates the entries table.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	driverName := driver
	if driver == "sqlite" {
		driverName = "sqlite3"
	}

	db, err := otelsql.Open(driverName, dsn, otelsql.WithAttributes(attribute.String("db.system", driver)))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	store := New(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Migrate(ctx context.Context) error {
	dbCtx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(dbCtx, schema); err != nil {
		return fmt.Errorf("failed to create offline_entries table: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !storage.ValidKey(key) {
		return nil, false, fmt.Errorf("%w: %q", storage.ErrInvalidKey, key)
	}

	dbCtx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	query := `SELECT entry_value FROM offline_entries WHERE entry_key = $1`

	var value string
	err := s.db.QueryRowContext(dbCtx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying entry %s: %w", key, err)
	}

	return []byte(value), true, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if !storage.ValidKey(key) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidKey, key)
	}

	dbCtx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	query := `INSERT INTO offline_entries (entry_key, entry_value, updated_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(dbCtx, query, key, string(value), s.now().UTC()); err != nil {
		return fmt.Errorf("writing entry %s: %w", key, err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
