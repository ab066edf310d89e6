package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicateSku     = errors.New("el SKU ya está registrado")
	ErrDuplicateBarcode = errors.New("el código de barras ya está registrado")
	ErrInvalidRange     = errors.New("rango inválido: el mínimo supera al máximo")
	// ErrStorage envuelve fallos inesperados del almacenamiento (conexión, constraints no previstos).
	ErrStorage = errors.New("error de almacenamiento")
)

// ValidationError describe la violación de una regla de campo detectada antes de persistir.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string // nombre JSON del campo (ej. "sku", "unit_price")
	Rule    string // regla violada (required, max, gte, email, exists)
	Message string
}

// NewValidationError construye el error con un mensaje legible por defecto.
func NewValidationError(field, rule, param string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: ruleMessage(field, rule, param)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func ruleMessage(field, rule, param string) string {
	switch rule {
	case "required":
		return fmt.Sprintf("%s es requerido", field)
	case "max":
		return fmt.Sprintf("%s no debe superar %s caracteres", field, param)
	case "gte":
		return fmt.Sprintf("%s no puede ser negativo", field)
	case "lt":
		return fmt.Sprintf("%s debe ser menor que %s", field, param)
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", field, param)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", field)
	case "exists":
		return fmt.Sprintf("%s hace referencia a un registro inexistente", field)
	default:
		return fmt.Sprintf("%s no cumple la regla %s", field, rule)
	}
}
