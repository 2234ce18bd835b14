package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The upstream API speaks JSON numbers for prices.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"productName"`
	Description string          `json:"productDescription"`
	Price       decimal.Decimal `json:"productPrice"`
	Category    string          `json:"productCategory"`
	Stock       int             `json:"productStock"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type CreateProductRequest struct {
	Name        string          `json:"productName" validate:"required,min=1,max=100"`
	Description string          `json:"productDescription,omitempty" validate:"max=300"`
	Price       decimal.Decimal `json:"productPrice" validate:"gt=0"`
	Category    string          `json:"productCategory" validate:"required"`
	Stock       int             `json:"productStock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"productName,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"productDescription,omitempty" validate:"omitempty,max=300"`
	Price       *decimal.Decimal `json:"productPrice,omitempty" validate:"omitempty,gt=0"`
	Category    *string          `json:"productCategory,omitempty" validate:"omitempty,min=1"`
	Stock       *int             `json:"productStock,omitempty" validate:"omitempty,gte=0"`
}

// NewProduct builds a product from a validated request. Price is rounded to
// cents.
func NewProduct(id int64, req *CreateProductRequest, createdAt time.Time) Product {
	return Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Category:    req.Category,
		Stock:       req.Stock,
		CreatedAt:   createdAt,
	}
}

// Apply merges the non-nil fields of req into p. ID and CreatedAt are never
// touched.
func (p Product) Apply(req *UpdateProductRequest) Product {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = req.Price.Round(2)
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}

	return p
}

// Value is price * stock.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}
