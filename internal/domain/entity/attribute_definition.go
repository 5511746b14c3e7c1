package entity

import "time"

// AttributeType tipo declarado de un atributo dinámico. Conjunto cerrado: ver AttributeTypes.
type AttributeType string

const (
	AttributeTypeString  AttributeType = "string"
	AttributeTypeInt     AttributeType = "int"
	AttributeTypeDecimal AttributeType = "decimal"
	AttributeTypeBool    AttributeType = "bool"
	AttributeTypeDate    AttributeType = "date"
	AttributeTypeEnum    AttributeType = "enum"
	AttributeTypeJSON    AttributeType = "json"
)

// AttributeTypes devuelve los tipos reconocidos en orden alfabético.
func AttributeTypes() []AttributeType {
	return []AttributeType{
		AttributeTypeBool,
		AttributeTypeDate,
		AttributeTypeDecimal,
		AttributeTypeEnum,
		AttributeTypeInt,
		AttributeTypeJSON,
		AttributeTypeString,
	}
}

// Valid indica si t pertenece al conjunto de tipos reconocidos.
func (t AttributeType) Valid() bool {
	switch t {
	case AttributeTypeString, AttributeTypeInt, AttributeTypeDecimal, AttributeTypeBool,
		AttributeTypeDate, AttributeTypeEnum, AttributeTypeJSON:
		return true
	}
	return false
}

// AttributeDefinition declara un atributo dinámico dentro de una categoría.
// (CategoryID, Name) es único. Options existe y no está vacío sólo cuando Type es enum.
type AttributeDefinition struct {
	ID         string
	CategoryID string
	Name       string
	Type       AttributeType
	IsRequired bool
	IsUnique   bool // se persiste pero no se aplica sobre los valores
	Unit       *string
	Options    []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
