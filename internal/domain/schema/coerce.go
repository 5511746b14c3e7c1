// Package schema contiene el motor de coerción de tipos del esquema dinámico (EAV) y las reglas
// de validación de definiciones de atributos. No depende de persistencia.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CoercionError rechazo del motor de coerción. Es domain.ErrInvalidInput para errors.Is.
type CoercionError struct {
	Attribute string
	Type      entity.AttributeType
	Cause     error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("valor inválido para el atributo %s (%s): %v", e.Attribute, e.Type, e.Cause)
}

func (e *CoercionError) Unwrap() []error { return []error{domain.ErrInvalidInput, e.Cause} }

// Coerce valida raw contra el tipo declarado de def y devuelve el valor normalizado con un único
// slot poblado. raw es lo que produce un decoder JSON con UseNumber (string, json.Number, bool,
// nil, map, slice) o un valor Go nativo equivalente.
func Coerce(def *entity.AttributeDefinition, raw any) (entity.Value, error) {
	v, err := CoerceType(def.Type, def.Options, raw)
	if err != nil {
		return entity.Value{}, &CoercionError{Attribute: def.Name, Type: def.Type, Cause: err}
	}
	return v, nil
}

// CoerceType aplica la regla del tipo t. options sólo se usa para enum.
func CoerceType(t entity.AttributeType, options []string, raw any) (entity.Value, error) {
	switch t {
	case entity.AttributeTypeString:
		if raw == nil {
			return entity.Value{}, errors.New("string no puede ser nulo")
		}
		return entity.StringValue(stringForm(raw)), nil

	case entity.AttributeTypeInt:
		n, err := toInt(raw)
		if err != nil {
			return entity.Value{}, err
		}
		return entity.IntValue(n), nil

	case entity.AttributeTypeDecimal:
		f, err := toFloat(raw)
		if err != nil {
			return entity.Value{}, err
		}
		return entity.DecimalValue(f), nil

	case entity.AttributeTypeBool:
		b, err := toBool(raw)
		if err != nil {
			return entity.Value{}, err
		}
		return entity.BoolValue(b), nil

	case entity.AttributeTypeDate:
		if raw == nil {
			return entity.Value{}, errors.New("la fecha debe tener formato YYYY-MM-DD")
		}
		s := stringForm(raw)
		if !isDateShape(s) {
			return entity.Value{}, errors.New("la fecha debe tener formato YYYY-MM-DD")
		}
		return entity.DateValue(s), nil

	case entity.AttributeTypeEnum:
		if raw != nil {
			s := stringForm(raw)
			for _, o := range options {
				if o == s {
					return entity.EnumValue(s), nil
				}
			}
		}
		return entity.Value{}, fmt.Errorf("el valor debe ser uno de [%s]", strings.Join(options, ", "))

	case entity.AttributeTypeJSON:
		raw, err := toJSON(raw)
		if err != nil {
			return entity.Value{}, err
		}
		return entity.JSONValue(raw), nil
	}
	return entity.Value{}, fmt.Errorf("tipo de dato no soportado: %q", t)
}

// isDateShape comprueba sólo la forma YYYY-MM-DD (longitud 10, guiones en 5 y 8). No valida calendario.
func isDateShape(s string) bool {
	if utf8.RuneCountInString(s) != 10 {
		return false
	}
	r := []rune(s)
	return r[4] == '-' && r[7] == '-'
}

func stringForm(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
		return string(v)
	}
	if b, err := json.Marshal(raw); err == nil {
		return string(b)
	}
	return fmt.Sprint(raw)
}

func toInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, errors.New("int no puede ser nulo")
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q no es un entero", v)
		}
		return n, nil
	case json.Number:
		if n, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s no es un entero", v)
		}
		return integral(f)
	case float64:
		return integral(v)
	case float32:
		return integral(float64(v))
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case bool:
		return 0, errors.New("un booleano no es un entero")
	}
	return 0, fmt.Errorf("%T no es un entero", raw)
}

func integral(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%v no es un entero", f)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%v está fuera de rango", f)
	}
	return int64(f), nil
}

func toFloat(raw any) (float64, error) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return 0, errors.New("decimal no puede ser nulo")
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%q no es numérico", v)
		}
		f = p
	case json.Number:
		p, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%s no es numérico", v)
		}
		f = p
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case bool:
		return 0, errors.New("un booleano no es numérico")
	default:
		return 0, fmt.Errorf("%T no es numérico", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("NaN e Inf no están permitidos")
	}
	return f, nil
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case nil:
		return false, errors.New("booleano inválido")
	}
	switch strings.ToLower(stringForm(raw)) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	}
	return false, errors.New("booleano inválido")
}

// toJSON devuelve el texto JSON compacto. El texto de entrada se parsea; cualquier otro valor se
// acepta como ya estructurado.
func toJSON(raw any) (json.RawMessage, error) {
	var text []byte
	switch v := raw.(type) {
	case nil:
		return json.RawMessage("null"), nil
	case string:
		text = []byte(v)
	case json.RawMessage:
		text = v
	default:
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("json inválido: %w", err)
		}
		return b, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, text); err != nil {
		return nil, fmt.Errorf("json inválido: %w", err)
	}
	return buf.Bytes(), nil
}
