package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// errForeignKey SQLite no informa qué FK falló; el repositorio lo resuelve consultando.
var errForeignKey = errors.New("foreign key constraint failed")

// translateWriteError convierte los mensajes de constraint de SQLite en errores de dominio.
func translateWriteError(op string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: products.sku"):
		return domain.ErrDuplicateSku
	case strings.Contains(msg, "UNIQUE constraint failed: products.barcode"):
		return domain.ErrDuplicateBarcode
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return errForeignKey
	}
	return storageError(op, err)
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
