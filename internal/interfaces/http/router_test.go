package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain/query"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/Catalogo-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre SQLite en memoria, con una categoría (id 1).
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryPath, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	require.NoError(t, db.Exec(`INSERT INTO categories (id, name) VALUES (1, 'Herramientas')`).Error)

	products := sqlite.NewProductRepository(db)
	suppliers := sqlite.NewSupplierRepository(db)
	tx := sqlite.NewTxRunner(db)
	limits := query.DefaultLimits()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(tx, products, nil, pdf.NewMarotoCatalogGenerator(), limits),
		SupplierUC: usecase.NewSupplierUseCase(tx, suppliers, products, limits),
		Metrics:    metrics.New(),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func createProduct(t *testing.T, app *fiber.App, body string) dto.ProductResponse {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/products", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	return out
}

func errorBody(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	decode(t, resp, &out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos: escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_Create(t *testing.T) {
	app := buildTestApp(t)

	out := createProduct(t, app, `{"sku":"TOOL-001","name":"Martillo","unit_price":15,"cost_price":10,"category_id":1,"barcode":"7501"}`)

	assert.NotZero(t, out.ID)
	assert.True(t, out.IsActive)
	assert.True(t, out.ProfitMargin.Equal(decimal.RequireFromString("0.5")), out.ProfitMargin.String())
	assert.True(t, out.ProfitAmount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 10, out.ReorderPoint)
	assert.Equal(t, 1000, out.MaxStockLevel)
	assert.False(t, out.CreatedAt.IsZero())
}

func TestProducts_Create_SKUDuplicado(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, `{"sku":"DUP","name":"Uno","unit_price":1,"cost_price":1}`)

	resp := doJSON(t, app, fiber.MethodPost, "/api/products", `{"sku":"DUP","name":"Dos","unit_price":1,"cost_price":1}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_SKU", errorBody(t, resp).Code)
}

func TestProducts_Create_BarcodeDuplicado(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, `{"sku":"A","name":"A","unit_price":1,"cost_price":1,"barcode":"123"}`)

	resp := doJSON(t, app, fiber.MethodPost, "/api/products", `{"sku":"B","name":"B","unit_price":1,"cost_price":1,"barcode":"123"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_BARCODE", errorBody(t, resp).Code)
}

func TestProducts_Create_Validacion(t *testing.T) {
	app := buildTestApp(t)

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"sin nombre", `{"sku":"X","name":"  ","unit_price":1,"cost_price":1}`, "name"},
		{"sin sku", `{"name":"X","unit_price":1,"cost_price":1}`, "sku"},
		{"precio negativo", `{"sku":"X","name":"X","unit_price":-1,"cost_price":1}`, "unit_price"},
		{"precio negativo que redondea a cero", `{"sku":"X","name":"X","unit_price":-0.004,"cost_price":1}`, "unit_price"},
		{"precio fuera de NUMERIC(10,2)", `{"sku":"X","name":"X","unit_price":100000000,"cost_price":1}`, "unit_price"},
		{"peso fuera de NUMERIC(8,3)", `{"sku":"X","name":"X","unit_price":1,"cost_price":1,"weight":100000}`, "weight"},
		{"sin costo", `{"sku":"X","name":"X","unit_price":1}`, "cost_price"},
		{"sku largo", `{"sku":"` + strings.Repeat("A", 51) + `","name":"X","unit_price":1,"cost_price":1}`, "sku"},
		{"proveedor inexistente", `{"sku":"X","name":"X","unit_price":1,"cost_price":1,"supplier_id":99}`, "supplier_id"},
		{"categoría inexistente", `{"sku":"X","name":"X","unit_price":1,"cost_price":1,"category_id":99}`, "category_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, fiber.MethodPost, "/api/products", tc.body)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			body := errorBody(t, resp)
			assert.Equal(t, "VALIDATION", body.Code)
			assert.Equal(t, tc.field, body.Field)
		})
	}
}

func TestProducts_Create_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, fiber.MethodPost, "/api/products", `{"sku":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorBody(t, resp).Code)
}

func TestProducts_UpdateReemplazoTotal(t *testing.T) {
	app := buildTestApp(t)
	created := createProduct(t, app, `{"sku":"UPD-1","name":"Antes","description":"desc","unit_price":10,"cost_price":5,"barcode":"999","reorder_point":3,"category_id":1}`)

	resp := doJSON(t, app, fiber.MethodPut, "/api/products/"+itoa(created.ID), `{"sku":"UPD-1","name":"Después","unit_price":12.345,"cost_price":5}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)

	assert.Equal(t, "Después", out.Name)
	assert.Empty(t, out.Description)
	assert.Nil(t, out.Barcode)
	assert.Nil(t, out.CategoryID)
	assert.Equal(t, 10, out.ReorderPoint)
	assert.True(t, out.UnitPrice.Equal(decimal.RequireFromString("12.35")), out.UnitPrice.String())
	assert.True(t, out.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, out.IsActive)

	// El barcode liberado puede reutilizarse.
	createProduct(t, app, `{"sku":"OTRO","name":"Otro","unit_price":1,"cost_price":1,"barcode":"999"}`)
}

func TestProducts_Update_Errores(t *testing.T) {
	app := buildTestApp(t)
	a := createProduct(t, app, `{"sku":"A","name":"A","unit_price":1,"cost_price":1,"barcode":"111"}`)
	createProduct(t, app, `{"sku":"B","name":"B","unit_price":1,"cost_price":1,"barcode":"222"}`)

	resp := doJSON(t, app, fiber.MethodPut, "/api/products/"+itoa(a.ID), `{"sku":"B","name":"A","unit_price":1,"cost_price":1}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_SKU", errorBody(t, resp).Code)

	resp = doJSON(t, app, fiber.MethodPut, "/api/products/"+itoa(a.ID), `{"sku":"A","name":"A","unit_price":1,"cost_price":1,"barcode":"222"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_BARCODE", errorBody(t, resp).Code)

	// Mantener el propio barcode no es conflicto.
	resp = doJSON(t, app, fiber.MethodPut, "/api/products/"+itoa(a.ID), `{"sku":"A","name":"A2","unit_price":1,"cost_price":1,"barcode":"111"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/api/products/9999", `{"sku":"Z","name":"Z","unit_price":1,"cost_price":1}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProducts_Update_SKUDuplicadoNoModificaRegistros(t *testing.T) {
	app := buildTestApp(t)
	a := createProduct(t, app, `{"sku":"A","name":"Alfa","unit_price":1,"cost_price":1,"barcode":"111"}`)
	b := createProduct(t, app, `{"sku":"B","name":"Beta","unit_price":2,"cost_price":1}`)
	resp := doJSON(t, app, fiber.MethodDelete, "/api/products/"+itoa(b.ID), "")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	get := func(id int64) string {
		resp := doJSON(t, app, fiber.MethodGet, "/api/products/"+itoa(id), "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(raw)
	}
	beforeA, beforeB := get(a.ID), get(b.ID)
	require.Contains(t, beforeA, `"sku":"A"`)

	// B está inactivo pero su SKU sigue reservado.
	resp = doJSON(t, app, fiber.MethodPut, "/api/products/"+itoa(a.ID), `{"sku":"B","name":"Cambiado","unit_price":9,"cost_price":1}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_SKU", errorBody(t, resp).Code)

	assert.JSONEq(t, beforeA, get(a.ID))
	assert.JSONEq(t, beforeB, get(b.ID))
}

func TestProducts_CountIgualAListadoCompleto(t *testing.T) {
	app := buildTestApp(t)
	for i := 0; i < 12; i++ {
		p := createProduct(t, app, `{"sku":"CNT-`+itoa(int64(i))+`","name":"Producto","unit_price":1,"cost_price":1}`)
		if i%3 == 0 {
			resp := doJSON(t, app, fiber.MethodDelete, "/api/products/"+itoa(p.ID), "")
			require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		}
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/count", "")
	var count dto.CountResponse
	decode(t, resp, &count)

	var listed int
	for page := 0; ; page++ {
		resp := doJSON(t, app, fiber.MethodGet, "/api/products?size=5&page="+itoa(int64(page)), "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var out dto.ProductPageResponse
		decode(t, resp, &out)
		for _, item := range out.Items {
			assert.True(t, item.IsActive)
		}
		listed += len(out.Items)
		if len(out.Items) < 5 {
			break
		}
	}
	assert.Equal(t, int64(8), count.Count)
	assert.Equal(t, count.Count, int64(listed))
}

func TestProducts_ListPaginaEnorme(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, `{"sku":"ONE","name":"Uno","unit_price":1,"cost_price":1}`)

	resp := doJSON(t, app, fiber.MethodGet, "/api/products?page=922337203685477580&size=20", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.ProductPageResponse
	decode(t, resp, &out)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(1), out.Page.TotalElements)
}

func TestProducts_DeleteEsBorradoLogico(t *testing.T) {
	app := buildTestApp(t)
	p := createProduct(t, app, `{"sku":"DEL-1","name":"Borrable","unit_price":1,"cost_price":1}`)
	createProduct(t, app, `{"sku":"DEL-2","name":"Queda","unit_price":1,"cost_price":1}`)

	resp := doJSON(t, app, fiber.MethodDelete, "/api/products/"+itoa(p.ID), "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	// Idempotente.
	resp = doJSON(t, app, fiber.MethodDelete, "/api/products/"+itoa(p.ID), "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/"+itoa(p.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.ProductResponse
	decode(t, resp, &got)
	assert.False(t, got.IsActive)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/count", "")
	var count dto.CountResponse
	decode(t, resp, &count)
	assert.Equal(t, int64(1), count.Count)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products", "")
	var page dto.ProductPageResponse
	decode(t, resp, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "DEL-2", page.Items[0].SKU)
	assert.Equal(t, int64(1), page.Page.TotalElements)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/products/9999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos: lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_GetPorIdentidad(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, `{"sku":"ID-1","name":"Uno","unit_price":1,"cost_price":1,"barcode":"BC-1"}`)

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/sku/ID-1", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, fiber.MethodGet, "/api/products/barcode/BC-1", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/sku/NOPE", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorBody(t, resp).Code)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/9999", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", errorBody(t, resp).Code)
}

func TestProducts_ListPaginado(t *testing.T) {
	app := buildTestApp(t)
	for _, sku := range []string{"P-1", "P-2", "P-3"} {
		createProduct(t, app, `{"sku":"`+sku+`","name":"Item","unit_price":1,"cost_price":1}`)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/products?page=1&size=2&sort=sku,desc", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page dto.ProductPageResponse
	decode(t, resp, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "P-1", page.Items[0].SKU)
	assert.Equal(t, 1, page.Page.Number)
	assert.Equal(t, 2, page.Page.Size)
	assert.Equal(t, int64(3), page.Page.TotalElements)
	assert.Equal(t, 2, page.Page.TotalPages)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products?size=1000", "")
	decode(t, resp, &page)
	assert.Equal(t, query.MaxPageSize, page.Page.Size)
}

func TestProducts_Search(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, `{"sku":"W-1","name":"Blue Widget","unit_price":1,"cost_price":1}`)
	createProduct(t, app, `{"sku":"W-2","name":"Red WIDGET","unit_price":1,"cost_price":1}`)
	createProduct(t, app, `{"sku":"G-1","name":"Gadget","unit_price":1,"cost_price":1}`)

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/search?searchTerm=widget", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.ProductResponse
	decode(t, resp, &list)
	assert.Len(t, list, 2)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/search?searchTerm=widget&page=0&size=1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page dto.ProductPageResponse
	decode(t, resp, &page)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Page.TotalElements)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/search", "")
	decode(t, resp, &list)
	assert.Len(t, list, 3)
}

func TestProducts_PriceRange(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, `{"sku":"R-1","name":"Barato","unit_price":5,"cost_price":1}`)
	createProduct(t, app, `{"sku":"R-2","name":"Medio","unit_price":10,"cost_price":1}`)
	createProduct(t, app, `{"sku":"R-3","name":"Caro","unit_price":50,"cost_price":1}`)

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/price-range?minPrice=5&maxPrice=10", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.ProductResponse
	decode(t, resp, &list)
	assert.Len(t, list, 2)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/price-range?minPrice=10&maxPrice=5", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_RANGE", errorBody(t, resp).Code)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/price-range?minPrice=abc&maxPrice=5", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProducts_PorCategoria(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, `{"sku":"C-1","name":"Con categoría","unit_price":1,"cost_price":1,"category_id":1}`)
	createProduct(t, app, `{"sku":"C-2","name":"Sin categoría","unit_price":1,"cost_price":1}`)

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/category/1", "")
	var list []dto.ProductResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "C-1", list[0].SKU)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/category/1/count", "")
	var count dto.CountResponse
	decode(t, resp, &count)
	assert.Equal(t, int64(1), count.Count)
}

func TestProducts_CatalogPDF(t *testing.T) {
	app := buildTestApp(t)
	createProduct(t, app, `{"sku":"PDF-1","name":"Martillo","unit_price":15,"cost_price":10,"barcode":"7501234567890","category_id":1}`)

	resp := doJSON(t, app, fiber.MethodGet, "/api/products/catalog.pdf", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/catalog.pdf?categoryId=1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "catalogo-categoria-1.pdf")
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestSuppliers_FlujoCompleto(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/suppliers", `{"name":"Acme","address":"123 Main St","city":"Springfield","state":"IL","zip_code":"62701"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var supplier dto.SupplierResponse
	decode(t, resp, &supplier)
	assert.Equal(t, "USA", supplier.Country)
	assert.Equal(t, "123 Main St, Springfield, IL 62701, USA", supplier.FullAddress)
	assert.Equal(t, int64(0), supplier.ProductCount)

	sid := itoa(supplier.ID)
	active := createProduct(t, app, `{"sku":"S-1","name":"Activo","unit_price":1,"cost_price":1,"supplier_id":`+sid+`}`)
	inactive := createProduct(t, app, `{"sku":"S-2","name":"Inactivo","unit_price":1,"cost_price":1,"supplier_id":`+sid+`}`)
	resp = doJSON(t, app, fiber.MethodDelete, "/api/products/"+itoa(inactive.ID), "")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/suppliers/"+sid, "")
	decode(t, resp, &supplier)
	assert.Equal(t, int64(2), supplier.ProductCount)

	resp = doJSON(t, app, fiber.MethodGet, "/api/suppliers/"+sid+"/products", "")
	var list []dto.ProductResponse
	decode(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	resp = doJSON(t, app, fiber.MethodGet, "/api/products/supplier/"+sid, "")
	decode(t, resp, &list)
	assert.Len(t, list, 1)

	resp = doJSON(t, app, fiber.MethodPut, "/api/suppliers/"+sid, `{"name":"Acme Corp","email":"ventas@acme.test","country":"Mexico"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &supplier)
	assert.Equal(t, "Acme Corp", supplier.Name)
	assert.Equal(t, "Mexico", supplier.FullAddress)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/suppliers/"+sid, "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/suppliers", "")
	var page dto.SupplierPageResponse
	decode(t, resp, &page)
	assert.Empty(t, page.Items)

	// El producto conserva la referencia al proveedor desactivado.
	resp = doJSON(t, app, fiber.MethodGet, "/api/products/"+itoa(active.ID), "")
	var p dto.ProductResponse
	decode(t, resp, &p)
	require.NotNil(t, p.SupplierID)
	assert.Equal(t, supplier.ID, *p.SupplierID)
}

func TestSuppliers_Errores(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/suppliers", `{"name":"X","email":"no-es-email"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email", errorBody(t, resp).Field)

	resp = doJSON(t, app, fiber.MethodGet, "/api/suppliers/404", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/suppliers/404/products", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operación
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthYMetrics(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)

	_ = doJSON(t, app, fiber.MethodGet, "/api/products/count", "")
	resp = doJSON(t, app, fiber.MethodGet, "/metrics", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `catalog_http_requests_total{method="GET",route="/api/products/count",status="200"} 1`)
}
