package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Phone   string `json:"phone" validate:"required,min=3,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

// UpdateCustomerRequest entrada para actualizar un cliente (parche por campo).
// El historial de órdenes no se edita por aquí: ver AddOrderRequest.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,min=3,max=30"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// AddOrderRequest entrada para registrar una venta en el historial del cliente.
type AddOrderRequest struct {
	Total  decimal.Decimal `json:"total"`
	Detail string          `json:"detail"`
}

// OrderResponse una venta del historial reciente.
type OrderResponse struct {
	ID     string          `json:"id"`
	Total  decimal.Decimal `json:"total"`
	Detail string          `json:"detail,omitempty"`
	Date   time.Time       `json:"date"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email,omitempty"`
	Address      string          `json:"address,omitempty"`
	TotalOrders  int             `json:"total_orders"`
	RecentOrders []OrderResponse `json:"recent_orders"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
