// Package interchange moves product lists in and out of spreadsheet formats.
package interchange

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/shopspring/decimal"
)

// Header is the exported column order.
var Header = []string{"ID", "Nombre", "Descripción", "Precio", "Categoría", "Stock", "Fecha de creación"}

const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// aliases maps every accepted header, localised or internal, to a field.
var aliases = map[string]string{
	"Nombre":             "name",
	"productName":        "name",
	"Descripción":        "description",
	"productDescription": "description",
	"Precio":             "price",
	"productPrice":       "price",
	"Categoría":          "category",
	"productCategory":    "category",
	"Stock":              "stock",
	"productStock":       "stock",
}

type columns map[string]int

func mapColumns(header []string) columns {
	cols := columns{}

	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if field, ok := aliases[h]; ok {
			if _, seen := cols[field]; !seen {
				cols[field] = i
			}
		}
	}

	return cols
}

func (c columns) value(row []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var (
	decimalPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	integerPrefix = regexp.MustCompile(`^[+-]?\d+`)
)

// parsePrice reads the leading number of s, so "19.99 USD" is 19.99.
func parsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(decimalPrefix.FindString(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseStock reads the leading integer of s, so "12 uds" and "12.7" are 12.
func parseStock(s string) int {
	n, err := strconv.Atoi(integerPrefix.FindString(s))
	if err != nil {
		return 0
	}
	return n
}

// request builds a create request from one row. Cells without a leading
// number become zero and are left to validation.
func (c columns) request(row []string) models.CreateProductRequest {
	price := parsePrice(c.value(row, "price"))
	stock := parseStock(c.value(row, "stock"))

	return models.CreateProductRequest{
		Name:        c.value(row, "name"),
		Description: c.value(row, "description"),
		Price:       price,
		Category:    c.value(row, "category"),
		Stock:       stock,
	}
}

func record(p models.Product) []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.Description,
		p.Price.StringFixed(2),
		p.Category,
		strconv.Itoa(p.Stock),
		p.CreatedAt.UTC().Format(createdAtLayout),
	}
}

// textColumns are quoted on export.
var textColumns = map[int]bool{1: true, 2: true, 4: true}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// FileName is the default export name for the given day.
func FileName(day time.Time, ext string) string {
	return "inventario_" + day.Format(time.DateOnly) + "." + ext
}
