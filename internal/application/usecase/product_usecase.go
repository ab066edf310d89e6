package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos.
// Las escrituras se ejecutan en una transacción vía TxRunner; las lecturas usan repo
// (que puede ser el decorador con caché).
type ProductUseCase struct {
	tx     TxRunner
	repo   repository.ProductRepository
	cache  CacheEvicter
	pdf    CatalogPDFGenerator
	limits query.Limits
	now    func() time.Time
}

// NewProductUseCase construye el caso de uso. cache y pdf pueden ser nil.
func NewProductUseCase(
	tx TxRunner,
	repo repository.ProductRepository,
	cache CacheEvicter,
	pdf CatalogPDFGenerator,
	limits query.Limits,
) *ProductUseCase {
	if cache == nil {
		cache = noopEvicter{}
	}
	return &ProductUseCase{
		tx:     tx,
		repo:   repo,
		cache:  cache,
		pdf:    pdf,
		limits: limits,
		now:    time.Now,
	}
}

// Create crea un producto activo. El chequeo de SKU/barcode y el INSERT van en la misma
// transacción; si otra transacción concurrente gana la carrera, el constraint único
// del almacenamiento devuelve el mismo error tipado.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	product.IsActive = true
	if err := product.Validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	product.CreatedAt = now
	product.UpdatedAt = now

	err = uc.tx.Run(ctx, func(products repository.ProductRepository, suppliers repository.SupplierRepository) error {
		exists, err := products.ExistsBySKU(ctx, product.SKU)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateSku
		}
		if product.Barcode != nil {
			exists, err := products.ExistsByBarcode(ctx, *product.Barcode)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateBarcode
			}
		}
		if err := ensureSupplierExists(ctx, suppliers, product.SupplierID); err != nil {
			return err
		}
		return products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update reemplaza todos los campos mutables del producto con los de la entrada.
// No modifica IsActive ni CreatedAt.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	next, err := productFromRequest(in)
	if err != nil {
		return nil, err
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}

	var before, after entity.Product
	err = uc.tx.Run(ctx, func(products repository.ProductRepository, suppliers repository.SupplierRepository) error {
		current, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		before = *current

		if current.SKU != next.SKU {
			exists, err := products.ExistsBySKU(ctx, next.SKU)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateSku
			}
		}
		if next.Barcode != nil && current.BarcodeValue() != *next.Barcode {
			exists, err := products.ExistsByBarcode(ctx, *next.Barcode)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateBarcode
			}
		}
		if err := ensureSupplierExists(ctx, suppliers, next.SupplierID); err != nil {
			return err
		}

		replaceMutableFields(current, next)
		current.UpdatedAt = uc.now()
		if err := products.Save(ctx, current); err != nil {
			return err
		}
		after = *current
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.cache.Evict(ctx, &before, &after)
	return toProductResponse(&after), nil
}

// Deactivate aplica el borrado lógico. Es idempotente: desactivar un producto
// inactivo no produce cambios.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id int64) error {
	var changed entity.Product
	var didChange bool
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.SupplierRepository) error {
		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.Deactivate(uc.now()) {
			return nil
		}
		if err := products.Save(ctx, product); err != nil {
			return err
		}
		changed, didChange = *product, true
		return nil
	})
	if err != nil {
		return err
	}
	if didChange {
		uc.cache.Evict(ctx, &changed)
	}
	return nil
}

// GetByID obtiene un producto (activo o no) por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	return uc.found(uc.repo.GetByID(ctx, id))
}

// GetBySKU obtiene un producto por SKU exacto.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	return uc.found(uc.repo.GetBySKU(ctx, sku))
}

// GetByBarcode obtiene un producto por código de barras exacto.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	return uc.found(uc.repo.GetByBarcode(ctx, barcode))
}

func (uc *ProductUseCase) found(p *entity.Product, err error) (*dto.ProductResponse, error) {
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List lista productos activos paginados.
func (uc *ProductUseCase) List(ctx context.Context, in dto.PageRequest) (*dto.ProductPageResponse, error) {
	page := uc.limits.Normalize(in.Page, in.Size, in.Sort, query.ProductSortFields)
	list, err := uc.repo.ListActive(ctx, page)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductPageResponse{
		Items: toProductResponses(list),
		Page:  dto.NewPageResponse(page.Number, page.Size, total),
	}, nil
}

// Search busca en productos activos sin paginar.
func (uc *ProductUseCase) Search(ctx context.Context, term string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.SearchActive(ctx, term)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// SearchPage busca en productos activos con paginación.
func (uc *ProductUseCase) SearchPage(ctx context.Context, term string, in dto.PageRequest) (*dto.ProductPageResponse, error) {
	page := uc.limits.Normalize(in.Page, in.Size, in.Sort, query.ProductSortFields)
	list, err := uc.repo.SearchActivePage(ctx, term, page)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountSearchActive(ctx, term)
	if err != nil {
		return nil, err
	}
	return &dto.ProductPageResponse{
		Items: toProductResponses(list),
		Page:  dto.NewPageResponse(page.Number, page.Size, total),
	}, nil
}

// ListByCategory lista los productos activos de una categoría.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID int64) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListActiveByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListBySupplier lista los productos activos de un proveedor.
func (uc *ProductUseCase) ListBySupplier(ctx context.Context, supplierID int64) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListActiveBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ListByPriceRange lista productos activos con unit_price en [min, max].
func (uc *ProductUseCase) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]dto.ProductResponse, error) {
	if min.GreaterThan(max) {
		return nil, domain.ErrInvalidRange
	}
	list, err := uc.repo.ListActiveByPriceRange(ctx, min, max)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// CountActive cuenta los productos activos.
func (uc *ProductUseCase) CountActive(ctx context.Context) (int64, error) {
	return uc.repo.CountActive(ctx)
}

// CountByCategory cuenta los productos activos de una categoría.
func (uc *ProductUseCase) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return uc.repo.CountActiveByCategory(ctx, categoryID)
}

// ExportCatalogPDF genera la hoja de precios de los productos activos
// (opcionalmente de una sola categoría). Devuelve los bytes y el nombre de archivo.
func (uc *ProductUseCase) ExportCatalogPDF(ctx context.Context, categoryID *int64) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", errors.New("pdf: generador no configurado")
	}
	var (
		products []*entity.Product
		err      error
		title    = "Catálogo de productos"
		filename = "catalogo.pdf"
	)
	if categoryID != nil {
		products, err = uc.repo.ListActiveByCategory(ctx, *categoryID)
		title = fmt.Sprintf("Catálogo de productos - categoría %d", *categoryID)
		filename = fmt.Sprintf("catalogo-categoria-%d.pdf", *categoryID)
	} else {
		products, err = uc.allActive(ctx)
	}
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.GenerateCatalogPDF(ctx, title, products)
	if err != nil {
		return nil, "", err
	}
	return doc, filename, nil
}

// allActive recorre todas las páginas de productos activos en orden de id.
func (uc *ProductUseCase) allActive(ctx context.Context) ([]*entity.Product, error) {
	var all []*entity.Product
	page := query.Page{Size: query.MaxPageSize, Sort: query.Sort{Column: "id"}}
	for {
		list, err := uc.repo.ListActive(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
		if len(list) < page.Size {
			return all, nil
		}
		page.Number++
	}
}

// productFromRequest convierte la entrada en entidad aplicando defaults y normalización.
// Valida antes de normalizar; los llamadores vuelven a validar el valor ya redondeado.
func productFromRequest(in dto.ProductRequest) (*entity.Product, error) {
	if in.UnitPrice == nil {
		return nil, domain.NewValidationError("unit_price", "required", "")
	}
	if in.CostPrice == nil {
		return nil, domain.NewValidationError("cost_price", "required", "")
	}
	p := entity.NewProduct(in.SKU, in.Name, *in.UnitPrice, *in.CostPrice)
	p.Description = in.Description
	p.CategoryID = in.CategoryID
	p.SupplierID = in.SupplierID
	if in.Barcode != "" {
		barcode := in.Barcode
		p.Barcode = &barcode
	}
	p.Weight = in.Weight
	p.Dimensions = in.Dimensions
	if in.MinStockLevel != nil {
		p.MinStockLevel = *in.MinStockLevel
	}
	if in.MaxStockLevel != nil {
		p.MaxStockLevel = *in.MaxStockLevel
	}
	if in.ReorderPoint != nil {
		p.ReorderPoint = *in.ReorderPoint
	}
	// Se valida la entrada tal cual llegó: -0.004 redondearía a 0.00.
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

func replaceMutableFields(dst, src *entity.Product) {
	dst.SKU = src.SKU
	dst.Name = src.Name
	dst.Description = src.Description
	dst.Barcode = src.Barcode
	dst.UnitPrice = src.UnitPrice
	dst.CostPrice = src.CostPrice
	dst.Weight = src.Weight
	dst.Dimensions = src.Dimensions
	dst.MinStockLevel = src.MinStockLevel
	dst.MaxStockLevel = src.MaxStockLevel
	dst.ReorderPoint = src.ReorderPoint
	dst.CategoryID = src.CategoryID
	dst.SupplierID = src.SupplierID
}

func ensureSupplierExists(ctx context.Context, suppliers repository.SupplierRepository, supplierID *int64) error {
	if supplierID == nil {
		return nil
	}
	s, err := suppliers.GetByID(ctx, *supplierID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NewValidationError("supplier_id", "exists", "")
	}
	return nil
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		Barcode:       p.Barcode,
		UnitPrice:     p.UnitPrice,
		CostPrice:     p.CostPrice,
		Weight:        p.Weight,
		Dimensions:    p.Dimensions,
		MinStockLevel: p.MinStockLevel,
		MaxStockLevel: p.MaxStockLevel,
		ReorderPoint:  p.ReorderPoint,
		IsActive:      p.IsActive,
		ProfitMargin:  p.ProfitMargin(),
		ProfitAmount:  p.ProfitAmount(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
