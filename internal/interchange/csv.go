package interchange

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aaravmahajanofficial/inventory-client/internal/models"
)

var (
	ErrEmptyCSV      = errors.New("CSV vacío o formato inválido")
	ErrUnreadableCSV = errors.New("Error al leer el archivo CSV")
)

// ExportCSV writes the header and one row per product. Text columns are
// always quoted, which encoding/csv cannot be told to do.
func ExportCSV(w io.Writer, products []models.Product) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(Header, ",") + "\n"); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, p := range products {
		fields := record(p)
		for i, f := range fields {
			if textColumns[i] {
				fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
			}
		}

		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return fmt.Errorf("writing csv row %d: %w", p.ID, err)
		}
	}

	return bw.Flush()
}

// ParseCSV maps each data row to a create request by header name. A file
// without a header and at least one data row is ErrEmptyCSV.
func ParseCSV(r io.Reader) ([]models.CreateProductRequest, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableCSV, err)
	}

	return fromRows(rows, ErrEmptyCSV)
}

func fromRows(rows [][]string, empty error) ([]models.CreateProductRequest, error) {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		if !isBlank(row) {
			data = append(data, row)
		}
	}

	if len(data) < 2 {
		return nil, empty
	}

	cols := mapColumns(data[0])
	if len(cols) == 0 {
		return nil, empty
	}

	items := make([]models.CreateProductRequest, 0, len(data)-1)
	for _, row := range data[1:] {
		items = append(items, cols.request(row))
	}

	return items, nil
}
