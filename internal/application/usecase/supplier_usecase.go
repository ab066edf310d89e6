package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// SupplierUseCase casos de uso de proveedores.
type SupplierUseCase struct {
	tx        TxRunner
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	limits    query.Limits
	now       func() time.Time
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(
	tx TxRunner,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	limits query.Limits,
) *SupplierUseCase {
	return &SupplierUseCase{
		tx:        tx,
		suppliers: suppliers,
		products:  products,
		limits:    limits,
		now:       time.Now,
	}
}

// Create crea un proveedor activo.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	supplier := supplierFromRequest(in)
	if err := supplier.Validate(); err != nil {
		return nil, err
	}
	now := uc.now()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	err := uc.tx.Run(ctx, func(_ repository.ProductRepository, suppliers repository.SupplierRepository) error {
		return suppliers.Create(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier, 0), nil
}

// Update reemplaza los datos del proveedor. No modifica IsActive ni CreatedAt.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	next := supplierFromRequest(in)
	if err := next.Validate(); err != nil {
		return nil, err
	}

	var updated entity.Supplier
	var count int64
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, suppliers repository.SupplierRepository) error {
		current, err := suppliers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		next.ID = current.ID
		next.IsActive = current.IsActive
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = uc.now()
		if err := suppliers.Save(ctx, next); err != nil {
			return err
		}
		updated = *next
		count, err = products.CountBySupplier(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(&updated, count), nil
}

// Deactivate aplica el borrado lógico del proveedor (idempotente).
// Los productos asociados conservan su SupplierID.
func (uc *SupplierUseCase) Deactivate(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(_ repository.ProductRepository, suppliers repository.SupplierRepository) error {
		supplier, err := suppliers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		if !supplier.Deactivate(uc.now()) {
			return nil
		}
		return suppliers.Save(ctx, supplier)
	})
}

// GetByID obtiene un proveedor (activo o no) con su conteo de productos.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	supplier, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.products.CountBySupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier, count), nil
}

// List lista proveedores activos paginados.
func (uc *SupplierUseCase) List(ctx context.Context, in dto.PageRequest) (*dto.SupplierPageResponse, error) {
	page := uc.limits.Normalize(in.Page, in.Size, in.Sort, query.SupplierSortFields)
	list, err := uc.suppliers.ListActive(ctx, page)
	if err != nil {
		return nil, err
	}
	total, err := uc.suppliers.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		count, err := uc.products.CountBySupplier(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toSupplierResponse(s, count))
	}
	return &dto.SupplierPageResponse{
		Items: items,
		Page:  dto.NewPageResponse(page.Number, page.Size, total),
	}, nil
}

// ListProducts lista los productos activos del proveedor.
func (uc *SupplierUseCase) ListProducts(ctx context.Context, supplierID int64) ([]dto.ProductResponse, error) {
	supplier, err := uc.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.products.ListActiveBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

func supplierFromRequest(in dto.SupplierRequest) *entity.Supplier {
	s := entity.NewSupplier(in.Name)
	s.ContactPerson = in.ContactPerson
	s.Email = in.Email
	s.Phone = in.Phone
	s.Address = in.Address
	s.City = in.City
	s.State = in.State
	s.ZipCode = in.ZipCode
	if in.Country != "" {
		s.Country = in.Country
	}
	s.TaxID = in.TaxID
	s.PaymentTerms = in.PaymentTerms
	return s
}

func toSupplierResponse(s *entity.Supplier, productCount int64) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		City:          s.City,
		State:         s.State,
		ZipCode:       s.ZipCode,
		Country:       s.Country,
		TaxID:         s.TaxID,
		PaymentTerms:  s.PaymentTerms,
		FullAddress:   s.FullAddress(),
		ProductCount:  productCount,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
