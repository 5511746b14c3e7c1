package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,max=100"`
	SKU         string           `json:"sku" validate:"required,max=50"`
	CategoryID  string           `json:"category_id" validate:"required"`
	Description *string          `json:"description" validate:"omitempty,max=255"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency" validate:"omitempty,max=10"`
}

// UpdateProductRequest parche parcial (la categoría no se puede cambiar).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=100"`
	SKU         *string          `json:"sku" validate:"omitempty,max=50"`
	Description *string          `json:"description" validate:"omitempty,max=255"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency" validate:"omitempty,max=10"`
}

// ProductResponse salida de un producto sin atributos.
type ProductResponse struct {
	ID          string           `json:"id"`
	CategoryID  string           `json:"category_id"`
	Name        string           `json:"name"`
	SKU         string           `json:"sku"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductDetailResponse producto con sus atributos resueltos nombre → valor.
type ProductDetailResponse struct {
	ProductResponse
	Attributes map[string]any `json:"attributes"`
}

// ProductListResponse lista de productos, más recientes primero.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}

// SetAttributesRequest valores crudos por nombre de atributo.
type SetAttributesRequest struct {
	Attributes map[string]any `json:"attributes"`
}
