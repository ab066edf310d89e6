package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas por identidad devuelven (nil, nil) si no existe el registro.
// Toda consulta "Active" aplica el filtro is_active en el almacenamiento.
type ProductRepository interface {
	// Create persiste el producto y asigna su ID. SKU/barcode duplicados
	// devuelven domain.ErrDuplicateSku / domain.ErrDuplicateBarcode.
	Create(ctx context.Context, product *entity.Product) error
	// Save sobrescribe los campos mutables; nunca modifica created_at. is_active solo puede
	// pasar a false: contra una fila ya inactiva queda en false y product.IsActive se actualiza.
	Save(ctx context.Context, product *entity.Product) error

	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)

	ListActive(ctx context.Context, page query.Page) ([]*entity.Product, error)
	// SearchActive busca el término (subcadena, sin distinguir mayúsculas) en name, sku y description.
	SearchActive(ctx context.Context, term string) ([]*entity.Product, error)
	SearchActivePage(ctx context.Context, term string, page query.Page) ([]*entity.Product, error)
	CountSearchActive(ctx context.Context, term string) (int64, error)
	ListActiveByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error)
	ListActiveBySupplier(ctx context.Context, supplierID int64) ([]*entity.Product, error)
	// ListActiveByPriceRange filtra unit_price en [min, max]; min > max devuelve domain.ErrInvalidRange.
	ListActiveByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error)

	CountActive(ctx context.Context) (int64, error)
	CountActiveByCategory(ctx context.Context, categoryID int64) (int64, error)
	// CountBySupplier cuenta todos los productos asociados (activos o no).
	CountBySupplier(ctx context.Context, supplierID int64) (int64, error)

	// ExistsBySKU considera también productos inactivos (unicidad permanente).
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	ExistsByBarcode(ctx context.Context, barcode string) (bool, error)
}
