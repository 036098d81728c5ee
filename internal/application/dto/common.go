package dto

// ListRequest parámetros de consulta de un listado (búsqueda, orden y página).
type ListRequest struct {
	Query    string `query:"q"`
	Sort     string `query:"sort"`
	Dir      string `query:"dir" validate:"omitempty,oneof=asc desc"`
	Page     int    `query:"page" validate:"min=0"`
	PageSize int    `query:"page_size"`
}

// PageResponse metadatos de página en respuestas de listado.
type PageResponse struct {
	Page            int   `json:"page"`
	PageSize        int   `json:"page_size"`
	TotalItems      int   `json:"total_items"`
	NumberOfPages   int   `json:"number_of_pages"`
	PageSizeOptions []int `json:"page_size_options"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
