// Package offline holds the product list used when the upstream API is not
// reachable. The list lives in memory and is rewritten in full to a single
// durable entry after every mutation.
package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	appErrors "github.com/aaravmahajanofficial/inventory-client/internal/errors"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/aaravmahajanofficial/inventory-client/internal/storage"
)

const DefaultKey = "inventory_offline_products"

type Store struct {
	mu       sync.Mutex
	entries  storage.EntryStore
	key      string
	products []models.Product
	nextID   int64
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func New(entries storage.EntryStore, key string, opts ...Option) *Store {
	if key == "" {
		key = DefaultKey
	}

	s := &Store{
		entries:  entries,
		key:      key,
		products: []models.Product{},
		now:      time.Now,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.nextID = s.now().UnixMilli()

	return s
}

// Load replaces the in-memory list with the durable entry. A missing,
// unreadable or malformed entry yields an empty list; the failure is logged
// and never returned.
func (s *Store) Load(ctx context.Context) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = s.read(ctx)
	s.seed()

	return clone(s.products)
}

func (s *Store) read(ctx context.Context) []models.Product {
	data, found, err := s.entries.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("Offline entry unreadable, starting empty", slog.String("key", s.key), slog.Any("error", err))
		return []models.Product{}
	}

	if !found {
		return []models.Product{}
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		s.logger.Warn("Offline entry is corrupt, starting empty", slog.String("key", s.key), slog.Any("error", err))
		return []models.Product{}
	}

	if products == nil {
		products = []models.Product{}
	}

	return products
}

// seed keeps the id counter ahead of both the clock and every persisted id,
// so ids stay unique across restarts.
func (s *Store) seed() {
	next := s.now().UnixMilli()
	for _, p := range s.products {
		if p.ID >= next {
			next = p.ID + 1
		}
	}

	if next > s.nextID {
		s.nextID = next
	}
}

func (s *Store) Snapshot() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clone(s.products)
}

// Get returns the product with the given id, or a NOT_FOUND AppError.
func (s *Store) Get(id int64) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}

	return models.Product{}, notFound(id)
}

func notFound(id int64) error {
	return appErrors.NotFoundError(fmt.Sprintf("product %d not found", id))
}

func (s *Store) Add(ctx context.Context, req *models.CreateProductRequest) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := models.NewProduct(s.nextID, req, s.now().UTC())

	updated := append(clone(s.products), product)
	if err := s.persist(ctx, updated); err != nil {
		return models.Product{}, err
	}

	s.nextID++
	s.products = updated

	return product, nil
}

// Update merges req into the product with the given id. An unknown id is a
// NOT_FOUND AppError.
func (s *Store) Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.products {
		if p.ID == id {
			idx = i
			break
		}
	}

	if idx < 0 {
		return models.Product{}, notFound(id)
	}

	updated := clone(s.products)
	updated[idx] = updated[idx].Apply(req)

	if err := s.persist(ctx, updated); err != nil {
		return models.Product{}, err
	}

	s.products = updated

	return updated[idx], nil
}

// Remove drops the product with the given id. The list is persisted even
// when nothing matched.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID != id {
			updated = append(updated, p)
		}
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}

	s.products = updated

	return nil
}

// persist writes the full list. On failure the caller keeps the previous
// in-memory list.
func (s *Store) persist(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return appErrors.StorageError("failed to encode offline products").WithError(err)
	}

	if err := s.entries.Put(ctx, s.key, data); err != nil {
		s.logger.Error("Failed to persist offline products", slog.String("key", s.key), slog.Any("error", err))
		return appErrors.StorageError("failed to save offline products").WithError(err)
	}

	return nil
}

func clone(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}
