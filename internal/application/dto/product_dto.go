package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o actualizar un producto.
// La actualización es de reemplazo total: los campos omitidos quedan vacíos
// (o con su valor por defecto en los umbrales de stock), no se conservan los anteriores.
type ProductRequest struct {
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	CategoryID    *int64           `json:"category_id"`
	SupplierID    *int64           `json:"supplier_id"`
	Barcode       string           `json:"barcode"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	Weight        *decimal.Decimal `json:"weight"`
	Dimensions    string           `json:"dimensions"`
	MinStockLevel *int             `json:"min_stock_level"`
	MaxStockLevel *int             `json:"max_stock_level"`
	ReorderPoint  *int             `json:"reorder_point"`
}

// ProductResponse salida de un producto, con las métricas derivadas.
type ProductResponse struct {
	ID            int64            `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	CategoryID    *int64           `json:"category_id"`
	SupplierID    *int64           `json:"supplier_id"`
	Barcode       *string          `json:"barcode"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	CostPrice     decimal.Decimal  `json:"cost_price"`
	Weight        *decimal.Decimal `json:"weight"`
	Dimensions    string           `json:"dimensions"`
	MinStockLevel int              `json:"min_stock_level"`
	MaxStockLevel int              `json:"max_stock_level"`
	ReorderPoint  int              `json:"reorder_point"`
	IsActive      bool             `json:"is_active"`
	ProfitMargin  decimal.Decimal  `json:"profit_margin"`
	ProfitAmount  decimal.Decimal  `json:"profit_amount"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductPageResponse página de productos.
type ProductPageResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

