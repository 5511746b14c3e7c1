package entity

import "time"

// Category representa una categoría del catálogo. Es dueña del esquema dinámico de atributos
// (AttributeDefinition) que aplica a sus productos.
type Category struct {
	ID          string
	Name        string  // único global
	Description *string // nil si no se informó
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
