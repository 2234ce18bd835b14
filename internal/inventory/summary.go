package inventory

import (
	"cmp"
	"slices"

	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/shopspring/decimal"
)

const topN = 5

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Summary struct {
	TotalProducts   int              `json:"totalProducts"`
	TotalValue      decimal.Decimal  `json:"totalValue"`
	LowStockCount   int              `json:"lowStockCount"`
	TopCategories   []CategoryCount  `json:"topCategories"`
	LowStockSamples []models.Product `json:"lowStockProducts"`
}

// Summarize computes the dashboard figures. Top categories are ordered by
// count, ties keep first-seen order; low-stock samples by ascending stock.
func Summarize(products []models.Product) Summary {
	s := Summary{
		TotalProducts:   len(products),
		TotalValue:      decimal.Zero,
		TopCategories:   []CategoryCount{},
		LowStockSamples: []models.Product{},
	}

	index := map[string]int{}

	for _, p := range products {
		s.TotalValue = s.TotalValue.Add(p.Value())

		if i, ok := index[p.Category]; ok {
			s.TopCategories[i].Count++
		} else {
			index[p.Category] = len(s.TopCategories)
			s.TopCategories = append(s.TopCategories, CategoryCount{Name: p.Category, Count: 1})
		}

		if IsLowStock(p.Stock) {
			s.LowStockCount++
			s.LowStockSamples = append(s.LowStockSamples, p)
		}
	}

	slices.SortStableFunc(s.TopCategories, func(a, b CategoryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	slices.SortStableFunc(s.LowStockSamples, func(a, b models.Product) int {
		return cmp.Compare(a.Stock, b.Stock)
	})

	s.TotalValue = s.TotalValue.Round(2)
	s.TopCategories = s.TopCategories[:min(topN, len(s.TopCategories))]
	s.LowStockSamples = s.LowStockSamples[:min(topN, len(s.LowStockSamples))]

	return s
}
