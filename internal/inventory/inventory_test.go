package inventory_test

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/inventory"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func product(id int64, name, category, price string, stock int, age time.Duration) models.Product {
	return models.Product{
		ID:        id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  category,
		Stock:     stock,
		CreatedAt: base.Add(-age),
	}
}

func catalog() []models.Product {
	return []models.Product{
		product(1, "Mouse", "Accesorios", "19.99", 5, 48*time.Hour),
		product(2, "keyboard", "Accesorios", "49.50", 12, 24*time.Hour),
		product(3, "Monitor", "Pantallas", "199.00", 0, 72*time.Hour),
		product(4, "Ábaco", "Juguetes", "5.00", 30, time.Hour),
	}
}

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query inventory.Query
		want  []int64
	}{
		{name: "Default Newest First", query: inventory.Query{}, want: []int64{4, 2, 1, 3}},
		{name: "Search Is Case Insensitive", query: inventory.Query{Search: "MO"}, want: []int64{1, 3}},
		{name: "Search Matches Category", query: inventory.Query{Search: "pantallas"}, want: []int64{3}},
		{name: "Category Exact", query: inventory.Query{Category: "Accesorios", Sort: "price-asc"}, want: []int64{1, 2}},
		{name: "Price Descending", query: inventory.Query{Sort: "price-desc"}, want: []int64{3, 2, 1, 4}},
		{name: "Stock Ascending", query: inventory.Query{Sort: "stock-asc"}, want: []int64{3, 1, 2, 4}},
		{name: "Name Ignores Case And Accents", query: inventory.Query{Sort: "name-asc"}, want: []int64{4, 2, 3, 1}},
		{name: "Direction Defaults To Ascending", query: inventory.Query{Sort: "date"}, want: []int64{3, 1, 2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got, err := inventory.Filter(catalog(), tt.query)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	t.Run("Failure - Unknown Sort", func(t *testing.T) {
		// Act
		_, err := inventory.Filter(catalog(), inventory.Query{Sort: "weight-asc"})

		// Assert
		assert.ErrorContains(t, err, "weight")
	})

	t.Run("Input Left Untouched", func(t *testing.T) {
		// Arrange
		products := catalog()

		// Act
		_, err := inventory.Filter(products, inventory.Query{Sort: "price-desc"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4}, ids(products))
	})
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Accesorios", "Juguetes", "Pantallas"}, inventory.Categories(catalog()))
	assert.Equal(t, []string{}, inventory.Categories(nil))
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, models.StockOut, inventory.StockStatus(0))
	assert.Equal(t, models.StockLow, inventory.StockStatus(1))
	assert.Equal(t, models.StockLow, inventory.StockStatus(9))
	assert.Equal(t, models.StockIn, inventory.StockStatus(10))
}

func TestIsNew(t *testing.T) {
	assert.True(t, inventory.IsNew(base.Add(-6*24*time.Hour), base))
	assert.False(t, inventory.IsNew(base.Add(-7*24*time.Hour), base))
	assert.False(t, inventory.IsNew(time.Time{}, base))
}

func TestSummarize(t *testing.T) {
	t.Run("Success - Dashboard Figures", func(t *testing.T) {
		// Act
		s := inventory.Summarize(catalog())

		// Assert
		assert.Equal(t, 4, s.TotalProducts)
		// 19.99*5 + 49.50*12 + 199*0 + 5*30
		assert.True(t, s.TotalValue.Equal(decimal.RequireFromString("843.95")), s.TotalValue.String())
		assert.Equal(t, 2, s.LowStockCount)
		assert.Equal(t, []inventory.CategoryCount{
			{Name: "Accesorios", Count: 2},
			{Name: "Pantallas", Count: 1},
			{Name: "Juguetes", Count: 1},
		}, s.TopCategories)
		assert.Equal(t, []int64{3, 1}, ids(s.LowStockSamples))
	})

	t.Run("Success - Caps Lists At Five", func(t *testing.T) {
		// Arrange
		var products []models.Product
		for i := range 7 {
			products = append(products, product(int64(i), "P", string(rune('A'+i)), "1.00", i, 0))
		}

		// Act
		s := inventory.Summarize(products)

		// Assert
		assert.Len(t, s.TopCategories, 5)
		assert.Len(t, s.LowStockSamples, 5)
		assert.Equal(t, 0, s.LowStockSamples[0].Stock)
		assert.Equal(t, 7, s.LowStockCount)
	})

	t.Run("Empty Catalog", func(t *testing.T) {
		// Act
		s := inventory.Summarize(nil)

		// Assert
		assert.Zero(t, s.TotalProducts)
		assert.True(t, s.TotalValue.IsZero())
		assert.Empty(t, s.TopCategories)
		assert.NotNil(t, s.LowStockSamples)
	})
}

func TestDuplicate(t *testing.T) {
	// Arrange
	p := catalog()[0]

	// Act
	req := inventory.Duplicate(p)

	// Assert
	assert.Equal(t, "Mouse (copia)", req.Name)
	assert.True(t, req.Price.Equal(p.Price))
	assert.Equal(t, p.Stock, req.Stock)
}
