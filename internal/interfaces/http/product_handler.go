package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido", "")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (reemplazo total)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido", "id")
	}
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido", "")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Desactivar producto (borrado lógico)
// @Tags         products
// @Param        id   path  int  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido", "id")
	}
	if err := h.uc.Deactivate(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "INVALID_ID", "id inválido", "id")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetBySKU godoc
// @Summary      Obtener producto por SKU
// @Tags         products
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku} [get]
func (h *ProductHandler) GetBySKU(c *fiber.Ctx) error {
	out, err := h.uc.GetBySKU(c.UserContext(), c.Params("sku"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByBarcode godoc
// @Summary      Obtener producto por código de barras
// @Tags         products
// @Produce      json
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/barcode/{barcode} [get]
func (h *ProductHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.GetByBarcode(c.UserContext(), c.Params("barcode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos activos
// @Tags         products
// @Produce      json
// @Param        page  query  int     false  "Página (desde 0)"  default(0)
// @Param        size  query  int     false  "Tamaño (máx 100)"  default(20)
// @Param        sort  query  string  false  "campo[,asc|desc]"
// @Success      200   {object}  dto.ProductPageResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos activos por nombre, SKU o descripción
// @Description  Sin page ni size devuelve la lista completa; con alguno de ellos, una página.
// @Tags         products
// @Produce      json
// @Param        searchTerm  query  string  false  "Término (subcadena, sin distinguir mayúsculas)"
// @Param        page        query  int     false  "Página (desde 0)"
// @Param        size        query  int     false  "Tamaño (máx 100)"
// @Param        sort        query  string  false  "campo[,asc|desc]"
// @Success      200  {object}  dto.ProductPageResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	term := c.Query("searchTerm")
	if c.Query("page") == "" && c.Query("size") == "" {
		out, err := h.uc.Search(c.UserContext(), term)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.SearchPage(c.UserContext(), term, pageRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByCategory godoc
// @Summary      Listar productos activos de una categoría
// @Tags         products
// @Produce      json
// @Param        categoryId  path  int  true  "ID de la categoría"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products/category/{categoryId} [get]
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "categoryId")
	if !ok {
		return badRequest(c, "INVALID_ID", "categoryId inválido", "categoryId")
	}
	out, err := h.uc.ListByCategory(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CountByCategory godoc
// @Summary      Contar productos activos de una categoría
// @Tags         products
// @Produce      json
// @Param        categoryId  path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.CountResponse
// @Router       /api/products/category/{categoryId}/count [get]
func (h *ProductHandler) CountByCategory(c *fiber.Ctx) error {
	id, ok := paramID(c, "categoryId")
	if !ok {
		return badRequest(c, "INVALID_ID", "categoryId inválido", "categoryId")
	}
	n, err := h.uc.CountByCategory(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// ListBySupplier godoc
// @Summary      Listar productos activos de un proveedor
// @Tags         products
// @Produce      json
// @Param        supplierId  path  int  true  "ID del proveedor"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products/supplier/{supplierId} [get]
func (h *ProductHandler) ListBySupplier(c *fiber.Ctx) error {
	id, ok := paramID(c, "supplierId")
	if !ok {
		return badRequest(c, "INVALID_ID", "supplierId inválido", "supplierId")
	}
	out, err := h.uc.ListBySupplier(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByPriceRange godoc
// @Summary      Listar productos activos por rango de precio (inclusivo)
// @Tags         products
// @Produce      json
// @Param        minPrice  query  number  true  "Precio mínimo"
// @Param        maxPrice  query  number  true  "Precio máximo"
// @Success      200  {array}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/price-range [get]
func (h *ProductHandler) ListByPriceRange(c *fiber.Ctx) error {
	minPrice, ok := queryDecimal(c, "minPrice")
	if !ok {
		return badRequest(c, "VALIDATION", "minPrice inválido", "minPrice")
	}
	maxPrice, ok := queryDecimal(c, "maxPrice")
	if !ok {
		return badRequest(c, "VALIDATION", "maxPrice inválido", "maxPrice")
	}
	out, err := h.uc.ListByPriceRange(c.UserContext(), minPrice, maxPrice)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Count godoc
// @Summary      Contar productos activos
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Router       /api/products/count [get]
func (h *ProductHandler) Count(c *fiber.Ctx) error {
	n, err := h.uc.CountActive(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// CatalogPDF godoc
// @Summary      Hoja de precios del catálogo en PDF
// @Tags         products
// @Produce      application/pdf
// @Param        categoryId  query  int  false  "Filtrar por categoría"
// @Success      200  {file}  binary
// @Router       /api/products/catalog.pdf [get]
func (h *ProductHandler) CatalogPDF(c *fiber.Ctx) error {
	var categoryID *int64
	if raw := c.Query("categoryId"); raw != "" {
		id := int64(c.QueryInt("categoryId", 0))
		if id <= 0 {
			return badRequest(c, "INVALID_ID", "categoryId inválido", "categoryId")
		}
		categoryID = &id
	}
	doc, filename, err := h.uc.ExportCatalogPDF(c.UserContext(), categoryID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(doc)
}
