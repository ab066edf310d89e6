package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción gorm.
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run abre la transacción, pasa repos atados a ella y hace Commit si fn no falla.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewProductRepository(tx), NewSupplierRepository(tx))
	})
}
