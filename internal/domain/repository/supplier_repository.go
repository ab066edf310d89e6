package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	// Save sobrescribe los campos mutables con la misma regla de is_active que productos.
	Save(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	ListActive(ctx context.Context, page query.Page) ([]*entity.Supplier, error)
	CountActive(ctx context.Context) (int64, error)
}
