package schema

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// NormalizeName recorta espacios y normaliza a NFC, de modo que "Café" compuesto y descompuesto
// choquen en las restricciones de unicidad.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// LookupKey normaliza a NFC sin recortar: una clave con espacios no coincide con el nombre guardado.
func LookupKey(s string) string {
	return norm.NFC.String(s)
}

// ParseType valida el nombre de tipo declarado contra el conjunto cerrado de tipos.
func ParseType(s string) (entity.AttributeType, error) {
	t := entity.AttributeType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", domain.NewValidationError(fmt.Sprintf("data_type inválido. Permitidos: %v", entity.AttributeTypes()))
	}
	return t, nil
}

// NormalizeOptions convierte las opciones de un enum a texto aplicando la regla de coerción string.
// Una lista vacía o un elemento nulo se rechazan.
func NormalizeOptions(options []any) ([]string, error) {
	if len(options) == 0 {
		return nil, domain.NewValidationError(`los atributos enum requieren una lista "options" no vacía`)
	}
	out := make([]string, 0, len(options))
	for i, o := range options {
		v, err := CoerceType(entity.AttributeTypeString, nil, o)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("options[%d]: %v", i, err))
		}
		out = append(out, *v.String)
	}
	return out, nil
}
