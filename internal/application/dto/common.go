package dto

import (
	"bytes"
	"encoding/json"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NullableString campo de parche que distingue ausente (Set=false) de null explícito
// (Set=true, Value=nil).
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON sólo se invoca si la clave viene en el cuerpo, incluso con null.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// Some construye un NullableString presente con valor.
func Some(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}
