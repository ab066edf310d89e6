package dto

// PageRequest paginación para listados (page empieza en 0).
type PageRequest struct {
	Page int    `query:"page"`
	Size int    `query:"size"`
	Sort string `query:"sort"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPageResponse calcula el total de páginas.
func NewPageResponse(number, size int, total int64) PageResponse {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return PageResponse{Number: number, Size: size, TotalElements: total, TotalPages: pages}
}

// CountResponse salida de los endpoints de conteo.
type CountResponse struct {
	Count int64 `json:"count"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
