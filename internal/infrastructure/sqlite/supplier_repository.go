package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre gorm.
type SupplierRepo struct {
	db *gorm.DB
}

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(db *gorm.DB) *SupplierRepo {
	return &SupplierRepo{db: db}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	row := toSupplierRow(s)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return storageError("insert supplier", err)
	}
	s.ID = row.ID
	return nil
}

// Save no reactiva un proveedor inactivo; s.IsActive queda con el valor persistido.
func (r *SupplierRepo) Save(ctx context.Context, s *entity.Supplier) error {
	row := toSupplierRow(s)
	res := r.db.WithContext(ctx).Model(&supplierRow{}).Where("id = ?", s.ID).Updates(row.mutableColumns())
	if res.Error != nil {
		return storageError("update supplier", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	var stored supplierRow
	if err := r.db.WithContext(ctx).Select("is_active").Where("id = ?", s.ID).Take(&stored).Error; err != nil {
		return storageError("update supplier", err)
	}
	s.IsActive = stored.IsActive
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	var row supplierRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageError("get supplier", err)
	}
	return row.toEntity(), nil
}

func (r *SupplierRepo) ListActive(ctx context.Context, page query.Page) ([]*entity.Supplier, error) {
	var rows []supplierRow
	err := r.db.WithContext(ctx).Where("is_active = ?", true).
		Order(page.OrderBy()).Limit(page.Limit()).Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, storageError("list suppliers", err)
	}
	list := make([]*entity.Supplier, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *SupplierRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&supplierRow{}).Where("is_active = ?", true).Count(&n).Error; err != nil {
		return 0, storageError("count suppliers", err)
	}
	return n, nil
}
