package usecase

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		suppliers repository.SupplierRepository,
	) error) error
}

// CacheEvicter invalida las entradas de caché de los productos indicados
// (por id, sku y barcode). Se invoca después del Commit.
type CacheEvicter interface {
	Evict(ctx context.Context, products ...*entity.Product)
}

// CatalogPDFGenerator genera la hoja de precios del catálogo.
type CatalogPDFGenerator interface {
	GenerateCatalogPDF(ctx context.Context, title string, products []*entity.Product) ([]byte, error)
}

type noopEvicter struct{}

func (noopEvicter) Evict(context.Context, ...*entity.Product) {}
