// Package inventory derives catalog views from a product list: filtering,
// sorting, stock badges and dashboard figures.
package inventory

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	LowStockThreshold = 10
	NewProductWindow  = 7 * 24 * time.Hour
	DefaultSort       = "date-desc"
)

type Query struct {
	Search   string
	Category string
	// Sort is "<field>-<dir>", field one of name, price, stock, date and dir
	// asc or desc. Empty means DefaultSort.
	Sort string
}

var sortFields = map[string]func() func(a, b models.Product) int{
	"name": func() func(a, b models.Product) int {
		// Collators are not safe for concurrent use.
		c := collate.New(language.Spanish, collate.IgnoreCase)
		return func(a, b models.Product) int { return c.CompareString(a.Name, b.Name) }
	},
	"price": func() func(a, b models.Product) int {
		return func(a, b models.Product) int { return a.Price.Cmp(b.Price) }
	},
	"stock": func() func(a, b models.Product) int {
		return func(a, b models.Product) int { return cmp.Compare(a.Stock, b.Stock) }
	},
	"date": func() func(a, b models.Product) int {
		return func(a, b models.Product) int { return a.CreatedAt.Compare(b.CreatedAt) }
	},
}

// ParseSort splits a sort key and rejects unknown fields or directions.
func ParseSort(key string) (field string, desc bool, err error) {
	if key == "" {
		key = DefaultSort
	}

	field, dir, ok := strings.Cut(key, "-")
	if !ok {
		dir = "asc"
	}

	if _, known := sortFields[field]; !known {
		return "", false, fmt.Errorf("unknown sort field %q", field)
	}

	switch dir {
	case "asc":
		return field, false, nil
	case "desc":
		return field, true, nil
	default:
		return "", false, fmt.Errorf("unknown sort direction %q", dir)
	}
}

// Filter returns a new slice; products is left untouched. Search matches name,
// description or category ignoring case; Category must match exactly.
func Filter(products []models.Product, q Query) ([]models.Product, error) {
	field, desc, err := ParseSort(q.Sort)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !matches(p, needle) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	compare := sortFields[field]()
	slices.SortStableFunc(out, func(a, b models.Product) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})

	return out, nil
}

func matches(p models.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle)
}

// Categories lists the distinct categories in sorted order.
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := []string{}

	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}

	slices.Sort(out)

	return out
}

func StockStatus(stock int) models.StockStatus {
	switch {
	case stock <= 0:
		return models.StockOut
	case stock < LowStockThreshold:
		return models.StockLow
	default:
		return models.StockIn
	}
}

// IsLowStock counts out-of-stock products as low.
func IsLowStock(stock int) bool {
	return stock < LowStockThreshold
}

func IsNew(createdAt, now time.Time) bool {
	if createdAt.IsZero() {
		return false
	}
	return now.Sub(createdAt) < NewProductWindow
}

// Duplicate prefills a create request from p, the way the catalog's
// "duplicate" action does.
func Duplicate(p models.Product) *models.CreateProductRequest {
	return &models.CreateProductRequest{
		Name:        p.Name + " (copia)",
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
	}
}
