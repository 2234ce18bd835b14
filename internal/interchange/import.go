package interchange

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/inventory-client/internal/models"
)

// Creator is satisfied by the product repository.
type Creator interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (models.Product, error)
}

type RowError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

type ImportSummary struct {
	Total    int        `json:"total"`
	Imported int        `json:"imported"`
	Failed   []RowError `json:"failed,omitempty"`
}

func (s ImportSummary) String() string {
	return fmt.Sprintf("%d de %d productos importados", s.Imported, s.Total)
}

// Import creates every item in order. A failing row is skipped and recorded;
// only ctx cancellation stops the batch early.
func Import(ctx context.Context, creator Creator, items []models.CreateProductRequest) (ImportSummary, error) {
	summary := ImportSummary{Total: len(items)}

	for i := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if _, err := creator.Create(ctx, &items[i]); err != nil {
			slog.Debug("Import row skipped", slog.Int("row", i+1), slog.Any("error", err))
			summary.Failed = append(summary.Failed, RowError{Row: i + 1, Err: err.Error()})
			continue
		}

		summary.Imported++
	}

	return summary, nil
}
