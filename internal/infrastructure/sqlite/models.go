package sqlite

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
)

type categoryRow struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:100;not null;uniqueIndex"`
}

func (categoryRow) TableName() string { return "categories" }

type supplierRow struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Name          string    `gorm:"size:100;not null"`
	ContactPerson string    `gorm:"size:100;not null"`
	Email         string    `gorm:"size:100;not null"`
	Phone         string    `gorm:"size:20;not null"`
	Address       string    `gorm:"size:255;not null"`
	City          string    `gorm:"size:50;not null"`
	State         string    `gorm:"size:50;not null"`
	ZipCode       string    `gorm:"size:20;not null"`
	Country       string    `gorm:"size:50;not null"`
	TaxID         string    `gorm:"column:tax_id;size:50;not null"`
	PaymentTerms  string    `gorm:"size:100;not null"`
	IsActive      bool      `gorm:"not null;index:idx_suppliers_active"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (supplierRow) TableName() string { return "suppliers" }

// productRow columnas de products. Los precios se guardan como numeric: SQLite compara
// por valor numérico (BETWEEN, ORDER BY) y el decimal se reconstruye al escanear.
// Las columnas search_* guardan name, sku y description ya pasados a minúsculas en Go:
// LOWER() de SQLite solo convierte ASCII.
type productRow struct {
	ID            int64               `gorm:"primaryKey;autoIncrement"`
	SKU           string              `gorm:"column:sku;size:50;not null;uniqueIndex:products_sku_key"`
	Name          string              `gorm:"size:200;not null;index:idx_products_active_name,priority:2"`
	Description   string              `gorm:"not null"`
	CategoryID    *int64              `gorm:"index"`
	Category      *categoryRow        `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	SupplierID    *int64              `gorm:"index"`
	Supplier      *supplierRow        `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	Barcode       *string             `gorm:"size:50;uniqueIndex:products_barcode_key"`
	UnitPrice     decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	CostPrice     decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	Weight        decimal.NullDecimal `gorm:"type:numeric(8,3)"`
	Dimensions    string              `gorm:"size:50;not null"`
	MinStockLevel int                 `gorm:"not null"`
	MaxStockLevel int                 `gorm:"not null"`
	ReorderPoint  int                 `gorm:"not null"`
	IsActive      bool                `gorm:"not null;index:idx_products_active_name,priority:1"`
	CreatedAt     time.Time           `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time           `gorm:"not null;autoUpdateTime:false"`

	SearchName        string `gorm:"not null;default:''"`
	SearchSKU         string `gorm:"column:search_sku;not null;default:''"`
	SearchDescription string `gorm:"not null;default:''"`
}

func (productRow) TableName() string { return "products" }

// fillSearch recalcula las columnas de búsqueda desde los campos visibles.
func (r *productRow) fillSearch() {
	r.SearchName = query.Fold(r.Name)
	r.SearchSKU = query.Fold(r.SKU)
	r.SearchDescription = query.Fold(r.Description)
}

func toProductRow(p *entity.Product) productRow {
	row := productRow{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		Barcode:       p.Barcode,
		UnitPrice:     p.UnitPrice,
		CostPrice:     p.CostPrice,
		Dimensions:    p.Dimensions,
		MinStockLevel: p.MinStockLevel,
		MaxStockLevel: p.MaxStockLevel,
		ReorderPoint:  p.ReorderPoint,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Weight != nil {
		row.Weight = decimal.NewNullDecimal(*p.Weight)
	}
	row.fillSearch()
	return row
}

func (r productRow) toEntity() *entity.Product {
	p := &entity.Product{
		ID:            r.ID,
		SKU:           r.SKU,
		Name:          r.Name,
		Description:   r.Description,
		CategoryID:    r.CategoryID,
		SupplierID:    r.SupplierID,
		Barcode:       r.Barcode,
		UnitPrice:     r.UnitPrice,
		CostPrice:     r.CostPrice,
		Dimensions:    r.Dimensions,
		MinStockLevel: r.MinStockLevel,
		MaxStockLevel: r.MaxStockLevel,
		ReorderPoint:  r.ReorderPoint,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Weight.Valid {
		w := r.Weight.Decimal
		p.Weight = &w
	}
	return p
}

// mutableColumns columnas que Save sobrescribe (created_at nunca).
// is_active solo baja: una fila inactiva no vuelve a activarse.
func (r productRow) mutableColumns() map[string]any {
	return map[string]any{
		"sku":                r.SKU,
		"name":               r.Name,
		"description":        r.Description,
		"search_name":        r.SearchName,
		"search_sku":         r.SearchSKU,
		"search_description": r.SearchDescription,
		"category_id":        r.CategoryID,
		"supplier_id":        r.SupplierID,
		"barcode":            r.Barcode,
		"unit_price":         r.UnitPrice,
		"cost_price":         r.CostPrice,
		"weight":             r.Weight,
		"dimensions":         r.Dimensions,
		"min_stock_level":    r.MinStockLevel,
		"max_stock_level":    r.MaxStockLevel,
		"reorder_point":      r.ReorderPoint,
		"is_active":          gorm.Expr("is_active AND ?", r.IsActive),
		"updated_at":         r.UpdatedAt,
	}
}

func toSupplierRow(s *entity.Supplier) supplierRow {
	return supplierRow{
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
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (r supplierRow) toEntity() *entity.Supplier {
	return &entity.Supplier{
		ID:            r.ID,
		Name:          r.Name,
		ContactPerson: r.ContactPerson,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		ZipCode:       r.ZipCode,
		Country:       r.Country,
		TaxID:         r.TaxID,
		PaymentTerms:  r.PaymentTerms,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r supplierRow) mutableColumns() map[string]any {
	return map[string]any{
		"name":           r.Name,
		"contact_person": r.ContactPerson,
		"email":          r.Email,
		"phone":          r.Phone,
		"address":        r.Address,
		"city":           r.City,
		"state":          r.State,
		"zip_code":       r.ZipCode,
		"country":        r.Country,
		"tax_id":         r.TaxID,
		"payment_terms":  r.PaymentTerms,
		"is_active":      gorm.Expr("is_active AND ?", r.IsActive),
		"updated_at":     r.UpdatedAt,
	}
}
