package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo. Type discrimina la
// variante: un producto usa Quantity/BuyingPrice/SellingPrice, un servicio
// solo Charges (su tarifa). StockValue nunca se acepta como entrada.
type CreateItemRequest struct {
	Type          string          `json:"type" validate:"required,oneof=product service"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category"`
	Quantity      int64           `json:"quantity" validate:"min=0"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Charges       decimal.Decimal `json:"charges"`
	MeasuringUnit string          `json:"measuring_unit"`
}

// UpdateItemRequest entrada para actualizar un artículo (parche por campo).
// La variante (Type) no se cambia después de creado.
type UpdateItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category"`
	Quantity      *int64           `json:"quantity" validate:"omitempty,min=0"`
	BuyingPrice   *decimal.Decimal `json:"buying_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	Charges       *decimal.Decimal `json:"charges"`
	MeasuringUnit *string          `json:"measuring_unit"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      int64           `json:"quantity"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	MeasuringUnit string          `json:"measuring_unit"`
	StockValue    decimal.Decimal `json:"stock_value"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateCategoryRequest entrada para crear o renombrar una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SummaryResponse agregados del catálogo; los campos *Display son solo
// presentación (formato de moneda), el valor real viaja en el decimal.
type SummaryResponse struct {
	TotalItems             int             `json:"total_items"`
	TotalStockCount        int64           `json:"total_stock_count"`
	EstimatedSales         decimal.Decimal `json:"estimated_sales"`
	TotalStockValue        decimal.Decimal `json:"total_stock_value"`
	EstimatedSalesDisplay  string          `json:"estimated_sales_display"`
	TotalStockValueDisplay string          `json:"total_stock_value_display"`
}
