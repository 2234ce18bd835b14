package interchange

import (
	"errors"
	"fmt"
	"io"

	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Inventario"

var ErrEmptyXLSX = errors.New("XLSX vacío o formato inválido")

// ExportXLSX writes the same columns as ExportCSV to a single sheet, with
// numeric cells for id, price and stock.
func ExportXLSX(w io.Writer, products []models.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		price, _ := p.Price.Round(2).Float64()
		row := []any{
			p.ID,
			p.Name,
			p.Description,
			price,
			p.Category,
			p.Stock,
			p.CreatedAt.UTC().Format(createdAtLayout),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing xlsx row %d: %w", p.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}

	return nil
}

// ParseXLSX reads the first sheet with the same header rules as ParseCSV.
func ParseXLSX(r io.Reader) ([]models.CreateProductRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyXLSX
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return fromRows(rows, ErrEmptyXLSX)
}
