package dto

import "time"

// CreateAttributeRequest entrada para declarar un atributo en una categoría.
// Options sólo aplica a data_type=enum; cada opción se convierte a texto.
type CreateAttributeRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	DataType   string  `json:"data_type"`
	IsRequired bool    `json:"is_required"`
	IsUnique   bool    `json:"is_unique"`
	Unit       *string `json:"unit" validate:"omitempty,max=50"`
	Options    []any   `json:"options"`
}

// UpdateAttributeRequest parche parcial de una definición de atributo.
// Unit distingue ausente de null: {"unit": null} borra la unidad.
type UpdateAttributeRequest struct {
	Name       *string        `json:"name" validate:"omitempty,max=100"`
	DataType   *string        `json:"data_type"`
	IsRequired *bool          `json:"is_required"`
	IsUnique   *bool          `json:"is_unique"`
	Unit       NullableString `json:"unit" validate:"omitempty,max=50" swaggertype:"string"`
	Options    *[]any         `json:"options"`
}

// AttributeResponse salida de una definición de atributo.
type AttributeResponse struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	DataType   string    `json:"data_type"`
	IsRequired bool      `json:"is_required"`
	IsUnique   bool      `json:"is_unique"`
	Unit       *string   `json:"unit"`
	Options    []string  `json:"options,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AttributeListResponse definiciones de una categoría por nombre.
type AttributeListResponse struct {
	Items []AttributeResponse `json:"items"`
}
