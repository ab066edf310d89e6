package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// Códigos SQLSTATE usados para traducir errores.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Nombres de constraints definidos en migrations/000001_catalog.up.sql.
const (
	constraintProductSKU      = "products_sku_key"
	constraintProductBarcode  = "products_barcode_key"
	constraintProductCategory = "products_category_id_fkey"
	constraintProductSupplier = "products_supplier_id_fkey"
)

// translateWriteError convierte errores de INSERT/UPDATE en errores de dominio.
// Unique sobre sku/barcode -> ErrDuplicateSku/ErrDuplicateBarcode; FK -> ValidationError;
// el resto se envuelve con ErrStorage.
func translateWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintProductSKU:
				return domain.ErrDuplicateSku
			case constraintProductBarcode:
				return domain.ErrDuplicateBarcode
			}
		case codeForeignKeyViolation:
			switch pgErr.ConstraintName {
			case constraintProductCategory:
				return domain.NewValidationError("category_id", "exists", "")
			case constraintProductSupplier:
				return domain.NewValidationError("supplier_id", "exists", "")
			}
		case codeCheckViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.ConstraintName)
		}
	}
	return storageError(op, err)
}

// storageError envuelve fallos del motor con domain.ErrStorage.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
