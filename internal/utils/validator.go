package utils

import (
	"html"
	"reflect"
	"strings"

	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

var strictPolicy = bluemonday.StrictPolicy()

// NewValidator returns a validator that reports JSON field names and compares
// decimal prices as numbers.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
		d, ok := v.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})

	return validate
}

func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitize(*s)
	return &clean
}

// SanitizeCreate strips markup and surrounding whitespace from the text fields.
func SanitizeCreate(req *models.CreateProductRequest) {
	req.Name = sanitize(req.Name)
	req.Description = sanitize(req.Description)
	req.Category = sanitize(req.Category)
}

func SanitizeUpdate(req *models.UpdateProductRequest) {
	req.Name = sanitizePtr(req.Name)
	req.Description = sanitizePtr(req.Description)
	req.Category = sanitizePtr(req.Category)
}
