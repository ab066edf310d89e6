package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, category_id, supplier_id, barcode,
	unit_price, cost_price, weight, dimensions, min_stock_level, max_stock_level, reorder_point,
	is_active, created_at, updated_at`

// searchPredicate compara el patrón ($1, ya en minúsculas y escapado) contra name, sku y description.
const searchPredicate = `is_active AND (
	LOWER(name) LIKE $1 ESCAPE '\' OR
	LOWER(sku) LIKE $1 ESCAPE '\' OR
	LOWER(description) LIKE $1 ESCAPE '\')`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna el ID generado por la secuencia.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	sql := `
		INSERT INTO products (sku, name, description, category_id, supplier_id, barcode,
			unit_price, cost_price, weight, dimensions, min_stock_level, max_stock_level, reorder_point,
			is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	err := r.q.QueryRow(ctx, sql,
		p.SKU, p.Name, p.Description, p.CategoryID, p.SupplierID, p.Barcode,
		p.UnitPrice, p.CostPrice, p.Weight, p.Dimensions, p.MinStockLevel, p.MaxStockLevel, p.ReorderPoint,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return translateWriteError("insert product", err)
	}
	return nil
}

// Save sobrescribe los campos mutables. created_at no se toca.
// is_active solo puede pasar de true a false: la expresión se evalúa contra la versión
// vigente de la fila, así que un Save concurrente con datos viejos no reactiva un producto
// desactivado. p.IsActive queda con el valor persistido.
func (r *ProductRepo) Save(ctx context.Context, p *entity.Product) error {
	sql := `
		UPDATE products SET sku = $2, name = $3, description = $4, category_id = $5, supplier_id = $6,
			barcode = $7, unit_price = $8, cost_price = $9, weight = $10, dimensions = $11,
			min_stock_level = $12, max_stock_level = $13, reorder_point = $14,
			is_active = is_active AND $15, updated_at = $16
		WHERE id = $1
		RETURNING is_active`
	err := r.q.QueryRow(ctx, sql,
		p.ID, p.SKU, p.Name, p.Description, p.CategoryID, p.SupplierID,
		p.Barcode, p.UnitPrice, p.CostPrice, p.Weight, p.Dimensions,
		p.MinStockLevel, p.MaxStockLevel, p.ReorderPoint, p.IsActive, p.UpdatedAt,
	).Scan(&p.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return translateWriteError("update product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU exacto.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by sku", `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetByBarcode obtiene un producto por código de barras exacto.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by barcode", `SELECT `+productColumns+` FROM products WHERE barcode = $1`, barcode)
}

func (r *ProductRepo) getOne(ctx context.Context, op, sql string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError(op, err)
	}
	return p, nil
}

// ListActive lista productos activos paginados con orden estable.
func (r *ProductRepo) ListActive(ctx context.Context, page query.Page) ([]*entity.Product, error) {
	sql := fmt.Sprintf(`SELECT %s FROM products WHERE is_active ORDER BY %s LIMIT $1 OFFSET $2`,
		productColumns, page.OrderBy())
	return r.list(ctx, "list products", sql, page.Limit(), page.Offset())
}

// SearchActive busca el término en productos activos (sin paginar).
func (r *ProductRepo) SearchActive(ctx context.Context, term string) ([]*entity.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE ` + searchPredicate + ` ORDER BY id`
	return r.list(ctx, "search products", sql, query.ContainsPattern(term))
}

// SearchActivePage busca el término en productos activos con paginación.
func (r *ProductRepo) SearchActivePage(ctx context.Context, term string, page query.Page) ([]*entity.Product, error) {
	sql := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s LIMIT $2 OFFSET $3`,
		productColumns, searchPredicate, page.OrderBy())
	return r.list(ctx, "search products", sql, query.ContainsPattern(term), page.Limit(), page.Offset())
}

// CountSearchActive cuenta los resultados de búsqueda.
func (r *ProductRepo) CountSearchActive(ctx context.Context, term string) (int64, error) {
	return r.count(ctx, "count search", `SELECT COUNT(*) FROM products WHERE `+searchPredicate, query.ContainsPattern(term))
}

// ListActiveByCategory lista productos activos de una categoría.
func (r *ProductRepo) ListActiveByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE is_active AND category_id = $1 ORDER BY id`
	return r.list(ctx, "list products by category", sql, categoryID)
}

// ListActiveBySupplier lista productos activos de un proveedor.
func (r *ProductRepo) ListActiveBySupplier(ctx context.Context, supplierID int64) ([]*entity.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE is_active AND supplier_id = $1 ORDER BY id`
	return r.list(ctx, "list products by supplier", sql, supplierID)
}

// ListActiveByPriceRange lista productos activos con unit_price entre min y max (inclusivo).
func (r *ProductRepo) ListActiveByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*entity.Product, error) {
	if min.GreaterThan(max) {
		return nil, domain.ErrInvalidRange
	}
	sql := `SELECT ` + productColumns + ` FROM products WHERE is_active AND unit_price BETWEEN $1 AND $2 ORDER BY unit_price, id`
	return r.list(ctx, "list products by price", sql, min, max)
}

// CountActive cuenta los productos activos.
func (r *ProductRepo) CountActive(ctx context.Context) (int64, error) {
	return r.count(ctx, "count products", `SELECT COUNT(*) FROM products WHERE is_active`)
}

// CountActiveByCategory cuenta los productos activos de una categoría.
func (r *ProductRepo) CountActiveByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return r.count(ctx, "count products by category", `SELECT COUNT(*) FROM products WHERE is_active AND category_id = $1`, categoryID)
}

// CountBySupplier cuenta todos los productos asociados al proveedor.
func (r *ProductRepo) CountBySupplier(ctx context.Context, supplierID int64) (int64, error) {
	return r.count(ctx, "count products by supplier", `SELECT COUNT(*) FROM products WHERE supplier_id = $1`, supplierID)
}

// ExistsBySKU indica si algún producto (activo o no) usa el SKU.
func (r *ProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return r.exists(ctx, "exists sku", `SELECT EXISTS(SELECT 1 FROM products WHERE sku = $1)`, sku)
}

// ExistsByBarcode indica si algún producto (activo o no) usa el barcode.
func (r *ProductRepo) ExistsByBarcode(ctx context.Context, barcode string) (bool, error) {
	return r.exists(ctx, "exists barcode", `SELECT EXISTS(SELECT 1 FROM products WHERE barcode = $1)`, barcode)
}

func (r *ProductRepo) list(ctx context.Context, op, sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storageError(op, err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return list, nil
}

func (r *ProductRepo) count(ctx context.Context, op, sql string, args ...any) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, storageError(op, err)
	}
	return n, nil
}

func (r *ProductRepo) exists(ctx context.Context, op, sql string, arg any) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, sql, arg).Scan(&ok); err != nil {
		return false, storageError(op, err)
	}
	return ok, nil
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.SupplierID, &p.Barcode,
		&p.UnitPrice, &p.CostPrice, &p.Weight, &p.Dimensions, &p.MinStockLevel, &p.MaxStockLevel, &p.ReorderPoint,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
