package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// validate aplica las etiquetas `validate:` de los DTOs. Los límites max coinciden con las
// columnas VARCHAR del esquema y cuentan caracteres, no bytes.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if n, ok := field.Interface().(dto.NullableString); ok && n.Value != nil {
			return *n.Value
		}
		return ""
	}, dto.NullableString{})
	return v
}

// validateInput valida el DTO ya normalizado y devuelve el primer fallo como ValidationError.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validar entrada: %w", err)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(fmt.Sprintf("%s es requerido", fe.Field()))
	case "max":
		return domain.NewValidationError(fmt.Sprintf("%s admite hasta %s caracteres", fe.Field(), fe.Param()))
	default:
		return domain.NewValidationError(fmt.Sprintf("%s inválido (%s)", fe.Field(), fe.Tag()))
	}
}
