package entity

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance devuelve el validador compartido (thread-safe, cachea metadatos de structs).
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Los errores reportan el nombre JSON del campo.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		// decimal.Decimal se valida como float64 para poder usar gte/lte.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate = v
	})
	return validate
}

// Validate verifica las restricciones de campo del producto.
// Devuelve *domain.ValidationError con el primer campo inválido.
func (p *Product) Validate() error {
	return validateStruct(p)
}

// Validate verifica las restricciones de campo del proveedor.
func (s *Supplier) Validate() error {
	return validateStruct(s)
}

func validateStruct(v interface{}) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.ErrInvalidInput
	}
	fe := fieldErrs[0]
	rule := fe.Tag()
	if rule == "notblank" {
		rule = "required"
	}
	return domain.NewValidationError(fe.Field(), rule, fe.Param())
}
