package sqlite

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// searchPredicate compara @pattern (minúsculas, escapado) contra las columnas search_*.
const searchPredicate = `is_active = @active AND (
	search_name LIKE @pattern ESCAPE '\' OR
	search_sku LIKE @pattern ESCAPE '\' OR
	search_description LIKE @pattern ESCAPE '\')`

// ProductRepo implementación de ProductRepository sobre gorm (usable con db o tx).
type ProductRepo struct {
	db *gorm.DB
}

// NewProductRepository construye el repositorio.
func NewProductRepository(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste el producto y asigna su ID.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	row := toProductRow(p)
	if err := r.db.WithContext(ctx).Omit("Category", "Supplier").Create(&row).Error; err != nil {
		return r.writeError(ctx, "insert product", p, err)
	}
	p.ID = row.ID
	return nil
}

// Save sobrescribe los campos mutables; created_at no se toca.
// Un producto inactivo sigue inactivo aunque p.IsActive sea true; p.IsActive queda con el valor persistido.
func (r *ProductRepo) Save(ctx context.Context, p *entity.Product) error {
	row := toProductRow(p)
	res := r.db.WithContext(ctx).Model(&productRow{}).Where("id = ?", p.ID).Updates(row.mutableColumns())
	if res.Error != nil {
		return r.writeError(ctx, "update product", p, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	var stored productRow
	if err := r.db.WithContext(ctx).Select("is_active").Where("id = ?", p.ID).Take(&stored).Error; err != nil {
		return storageError("update product", err)
	}
	p.IsActive = stored.IsActive
	return nil
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.first(ctx, "get product", "id = ?", id)
}

// GetBySKU obtiene un producto por SKU exacto.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.first(ctx, "get product by sku", "sku = ?", sku)
}

// GetByBarcode obtiene un producto por código de barras exacto.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.first(ctx, "get product by barcode", "barcode = ?", barcode)
}

// ListActive lista productos activos paginados.
func (r *ProductRepo) ListActive(ctx context.Context, page query.Page) ([]*entity.Product, error) {
	return r.find(r.active(ctx).Order(page.OrderBy()).Limit(page.Limit()).Offset(page.Offset()), "list products")
}

// SearchActive busca el término en productos activos (sin paginar).
func (r *ProductRepo) SearchActive(ctx context.Context, term string) ([]*entity.Product, error) {
	return r.find(r.search(ctx, term).Order("id"), "search products")
}

// SearchActivePage busca el término en productos activos con paginación.
func (r *ProductRepo) SearchActivePage(ctx context.Context, term string, page query.Page) ([]*entity.Product, error) {
	return r.find(r.search(ctx, term).Order(page.OrderBy()).Limit(page.Limit()).Offset(page.Offset()), "search products")
}

// CountSearchActive cuenta los resultados de búsqueda.
func (r *ProductRepo) CountSearchActive(ctx context.Context, term string) (int64, error) {
	return r.count(r.search(ctx, term), "count search")
}

// ListActiveByCategory lista productos activos de una categoría.
func (r *ProductRepo) ListActiveByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	return r.find(r.active(ctx).Where("category_id = ?", categoryID).Order("id"), "list products by category")
}

// ListActiveBySupplier lista productos activos de un proveedor.
func (r *ProductRepo) ListActiveBySupplier(ctx context.Context, supplierID int64) ([]*entity.Product, error) {
	return r.find(r.active(ctx).Where("supplier_id = ?", supplierID).Order("id"), "list products by supplier")
}

// ListActiveByPriceRange lista productos activos con unit_price en [min, max].
func (r *ProductRepo) ListActiveByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error) {
	if min.GreaterThan(max) {
		return nil, domain.ErrInvalidRange
	}
	tx := r.active(ctx).Where("unit_price BETWEEN ? AND ?", min, max).Order("unit_price, id")
	return r.find(tx, "list products by price")
}

// CountActive cuenta los productos activos.
func (r *ProductRepo) CountActive(ctx context.Context) (int64, error) {
	return r.count(r.active(ctx), "count products")
}

// CountActiveByCategory cuenta los productos activos de una categoría.
func (r *ProductRepo) CountActiveByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return r.count(r.active(ctx).Where("category_id = ?", categoryID), "count products by category")
}

// CountBySupplier cuenta todos los productos del proveedor (activos o no).
func (r *ProductRepo) CountBySupplier(ctx context.Context, supplierID int64) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&productRow{}).Where("supplier_id = ?", supplierID)
	return r.count(tx, "count products by supplier")
}

// ExistsBySKU indica si algún producto (activo o no) usa el SKU.
func (r *ProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	n, err := r.count(r.db.WithContext(ctx).Model(&productRow{}).Where("sku = ?", sku), "exists sku")
	return n > 0, err
}

// ExistsByBarcode indica si algún producto (activo o no) usa el barcode.
func (r *ProductRepo) ExistsByBarcode(ctx context.Context, barcode string) (bool, error) {
	n, err := r.count(r.db.WithContext(ctx).Model(&productRow{}).Where("barcode = ?", barcode), "exists barcode")
	return n > 0, err
}

func (r *ProductRepo) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&productRow{}).Where("is_active = ?", true)
}

func (r *ProductRepo) search(ctx context.Context, term string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&productRow{}).
		Where(searchPredicate, map[string]any{"active": true, "pattern": query.ContainsPattern(term)})
}

func (r *ProductRepo) first(ctx context.Context, op string, cond string, arg any) (*entity.Product, error) {
	var row productRow
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storageError(op, err)
	}
	return row.toEntity(), nil
}

func (r *ProductRepo) find(tx *gorm.DB, op string) ([]*entity.Product, error) {
	var rows []productRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, storageError(op, err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *ProductRepo) count(tx *gorm.DB, op string) (int64, error) {
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, storageError(op, err)
	}
	return n, nil
}

// writeError traduce el error de escritura. Para FKs averigua cuál de las referencias no existe.
func (r *ProductRepo) writeError(ctx context.Context, op string, p *entity.Product, err error) error {
	translated := translateWriteError(op, err)
	if !errors.Is(translated, errForeignKey) {
		return translated
	}
	if p.CategoryID != nil {
		var n int64
		if err := r.db.WithContext(ctx).Model(&categoryRow{}).Where("id = ?", *p.CategoryID).Count(&n).Error; err != nil {
			return storageError(op, err)
		}
		if n == 0 {
			return domain.NewValidationError("category_id", "exists", "")
		}
	}
	return domain.NewValidationError("supplier_id", "exists", "")
}
