package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto de los umbrales de stock.
const (
	DefaultMinStockLevel = 0
	DefaultMaxStockLevel = 1000
	DefaultReorderPoint  = 10
)

// Escalas de las columnas NUMERIC.
const (
	PriceScale  = 2
	WeightScale = 3
	MarginScale = 4
)

// Product representa un artículo del catálogo.
// Las cotas lt= de precios y peso son las de NUMERIC(10,2) y NUMERIC(8,3).
// IsActive=false es el borrado lógico: el registro sigue existiendo y se obtiene por ID,
// pero queda fuera de listados, búsquedas y conteos de activos.
type Product struct {
	ID            int64            `json:"id"`
	SKU           string           `json:"sku" validate:"notblank,max=50"`
	Name          string           `json:"name" validate:"notblank,max=200"`
	Description   string           `json:"description,omitempty"`
	CategoryID    *int64           `json:"category_id,omitempty"`
	SupplierID    *int64           `json:"supplier_id,omitempty"`
	Barcode       *string          `json:"barcode,omitempty" validate:"omitempty,max=50"`
	UnitPrice     decimal.Decimal  `json:"unit_price" validate:"gte=0,lt=100000000"`
	CostPrice     decimal.Decimal  `json:"cost_price" validate:"gte=0,lt=100000000"`
	Weight        *decimal.Decimal `json:"weight,omitempty" validate:"omitempty,gt=-100000,lt=100000"`
	Dimensions    string           `json:"dimensions,omitempty" validate:"max=50"`
	MinStockLevel int              `json:"min_stock_level"`
	MaxStockLevel int              `json:"max_stock_level"`
	ReorderPoint  int              `json:"reorder_point"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// NewProduct construye un producto activo con los umbrales por defecto.
func NewProduct(sku, name string, unitPrice, costPrice decimal.Decimal) *Product {
	return &Product{
		SKU:           sku,
		Name:          name,
		UnitPrice:     unitPrice,
		CostPrice:     costPrice,
		MinStockLevel: DefaultMinStockLevel,
		MaxStockLevel: DefaultMaxStockLevel,
		ReorderPoint:  DefaultReorderPoint,
		IsActive:      true,
	}
}

// Normalize ajusta los valores a la forma en que se persisten:
// precios a 2 decimales y peso a 3 (redondeo half-up), barcode vacío = sin barcode.
func (p *Product) Normalize() {
	p.UnitPrice = p.UnitPrice.Round(PriceScale)
	p.CostPrice = p.CostPrice.Round(PriceScale)
	if p.Weight != nil {
		w := p.Weight.Round(WeightScale)
		p.Weight = &w
	}
	if p.Barcode != nil && *p.Barcode == "" {
		p.Barcode = nil
	}
}

// ProfitMargin = (UnitPrice - CostPrice) / CostPrice con 4 decimales half-up.
// Con costo cero devuelve cero.
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.CostPrice.IsZero() {
		return decimal.Zero
	}
	return p.UnitPrice.Sub(p.CostPrice).DivRound(p.CostPrice, MarginScale)
}

// ProfitAmount = UnitPrice - CostPrice.
func (p *Product) ProfitAmount() decimal.Decimal {
	return p.UnitPrice.Sub(p.CostPrice)
}

// StockThresholdsConsistent indica si MinStockLevel <= ReorderPoint <= MaxStockLevel.
// No se exige al crear ni al actualizar; queda a criterio del llamador.
func (p *Product) StockThresholdsConsistent() bool {
	return p.MinStockLevel <= p.ReorderPoint && p.ReorderPoint <= p.MaxStockLevel
}

// Deactivate marca el producto como inactivo. Devuelve false si ya lo estaba.
func (p *Product) Deactivate(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	p.IsActive = false
	p.UpdatedAt = now
	return true
}

// BarcodeValue devuelve el barcode o cadena vacía.
func (p *Product) BarcodeValue() string {
	if p.Barcode == nil {
		return ""
	}
	return *p.Barcode
}
