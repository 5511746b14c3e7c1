package entity

import (
	"encoding/json"
	"time"
)

// Value es una unión etiquetada: Type indica cuál de los slots está poblado y el resto queda en nil.
// enum comparte el slot String.
type Value struct {
	Type    AttributeType
	String  *string
	Int     *int64
	Decimal *float64
	Bool    *bool
	Date    *string // YYYY-MM-DD
	JSON    json.RawMessage
}

func StringValue(s string) Value   { return Value{Type: AttributeTypeString, String: &s} }
func EnumValue(s string) Value     { return Value{Type: AttributeTypeEnum, String: &s} }
func IntValue(i int64) Value       { return Value{Type: AttributeTypeInt, Int: &i} }
func DecimalValue(f float64) Value { return Value{Type: AttributeTypeDecimal, Decimal: &f} }
func BoolValue(b bool) Value       { return Value{Type: AttributeTypeBool, Bool: &b} }
func DateValue(s string) Value     { return Value{Type: AttributeTypeDate, Date: &s} }

// JSONValue toma raw ya validado y compactado.
func JSONValue(raw json.RawMessage) Value { return Value{Type: AttributeTypeJSON, JSON: raw} }

// Interface devuelve el valor del slot activo según Type (nil si el slot está vacío).
// Nunca sondea otros slots.
func (v Value) Interface() any {
	switch v.Type {
	case AttributeTypeString, AttributeTypeEnum:
		if v.String != nil {
			return *v.String
		}
	case AttributeTypeInt:
		if v.Int != nil {
			return *v.Int
		}
	case AttributeTypeDecimal:
		if v.Decimal != nil {
			return *v.Decimal
		}
	case AttributeTypeBool:
		if v.Bool != nil {
			return *v.Bool
		}
	case AttributeTypeDate:
		if v.Date != nil {
			return *v.Date
		}
	case AttributeTypeJSON:
		if v.JSON != nil {
			return v.JSON
		}
	}
	return nil
}

// AttributeValue fila dispersa (producto, atributo) → valor tipado.
// (ProductID, AttributeDefinitionID) es único.
type AttributeValue struct {
	ID                    string
	ProductID             string
	AttributeDefinitionID string
	Value                 Value // Value.Type = tipo de la definición en la última escritura
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ResolvedAttributeValue valor junto al nombre de su definición (lectura de un producto).
type ResolvedAttributeValue struct {
	AttributeValue
	AttributeName string
}
