package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. CategoryID no cambia después de la creación:
// los valores de atributos siempre se resuelven contra el esquema de esa categoría.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	SKU         string // único global
	Description *string
	Price       *decimal.Decimal
	Currency    *string // código de moneda (USD, COP, ...)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
