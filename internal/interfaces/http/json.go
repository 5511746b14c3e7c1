package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// DecodeJSON decodificador para fiber.Config.JSONDecoder. Conserva los números como json.Number
// para que los enteros grandes lleguen exactos al motor de coerción, y rechaza basura después
// del primer valor.
func DecodeJSON(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("json: datos extra después del cuerpo")
	}
	return nil
}
