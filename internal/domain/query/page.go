// Package query normaliza paginación, ordenamiento y términos de búsqueda
// para que los listados sean deterministas y repetibles entre páginas.
package query

import (
	"math"
	"strings"
)

// Límites de paginación por defecto. Las páginas empiezan en 0.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Direcciones de ordenamiento.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sort criterio de ordenamiento ya validado contra la lista blanca de columnas.
type Sort struct {
	Column string
	Desc   bool
}

// Page solicitud de página normalizada.
type Page struct {
	Number int
	Size   int
	Sort   Sort
}

// Limit devuelve el tamaño de página (para LIMIT).
func (p Page) Limit() int { return p.Size }

// Offset devuelve el desplazamiento (para OFFSET). Satura en math.MaxInt en lugar de
// desbordar, de modo que una página fuera de rango siempre queda vacía.
func (p Page) Offset() int {
	if p.Number <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Number > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Number * p.Size
}

// OrderBy devuelve la cláusula ORDER BY con desempate por id, de modo que
// ninguna fila se repita ni se salte entre páginas consecutivas.
func (p Page) OrderBy() string {
	dir := "ASC"
	if p.Sort.Desc {
		dir = "DESC"
	}
	col := p.Sort.Column
	if col == "" {
		col = "id"
	}
	if col == "id" {
		return "id " + dir
	}
	return col + " " + dir + ", id ASC"
}

// Limits tamaño por defecto y máximo configurables.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits devuelve los límites por defecto (20 / 100).
func DefaultLimits() Limits {
	return Limits{DefaultSize: DefaultPageSize, MaxSize: MaxPageSize}
}

// Normalize aplica límites a número, tamaño y orden.
// size <= 0 usa el tamaño por defecto; size > máximo se recorta; page < 0 pasa a 0.
// page se limita para que page*size no desborde.
// sortParam tiene la forma "campo" o "campo,asc|desc"; campos fuera de allowed usan id.
func (l Limits) Normalize(page, size int, sortParam string, allowed map[string]string) Page {
	if l.DefaultSize <= 0 {
		l.DefaultSize = DefaultPageSize
	}
	if l.MaxSize <= 0 {
		l.MaxSize = MaxPageSize
	}
	if l.DefaultSize > l.MaxSize {
		l.DefaultSize = l.MaxSize
	}
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = l.DefaultSize
	}
	if size > l.MaxSize {
		size = l.MaxSize
	}
	if page > math.MaxInt/size {
		page = math.MaxInt / size
	}
	return Page{Number: page, Size: size, Sort: ParseSort(sortParam, allowed)}
}

// ParseSort interpreta "campo,dir". La columna sale siempre de allowed (nunca del input).
func ParseSort(sortParam string, allowed map[string]string) Sort {
	field, dir, _ := strings.Cut(strings.TrimSpace(sortParam), ",")
	field = strings.ToLower(strings.TrimSpace(field))
	col, ok := allowed[field]
	if !ok {
		col = "id"
	}
	return Sort{Column: col, Desc: strings.EqualFold(strings.TrimSpace(dir), SortDesc)}
}

// ProductSortFields columnas ordenables de productos.
var ProductSortFields = map[string]string{
	"id":         "id",
	"sku":        "sku",
	"name":       "name",
	"unitprice":  "unit_price",
	"unit_price": "unit_price",
	"costprice":  "cost_price",
	"cost_price": "cost_price",
	"createdat":  "created_at",
	"created_at": "created_at",
	"updatedat":  "updated_at",
	"updated_at": "updated_at",
}

// SupplierSortFields columnas ordenables de proveedores.
var SupplierSortFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"createdat":  "created_at",
	"created_at": "created_at",
}
