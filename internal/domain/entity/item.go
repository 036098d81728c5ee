package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType discrimina la variante de un artículo del catálogo.
type ItemType string

const (
	ItemTypeProduct ItemType = "product" // lleva stock y precio de compra
	ItemTypeService ItemType = "service" // solo cobro: sin stock ni costo
)

// Item representa un artículo del catálogo: producto con stock o servicio de
// solo cobro. Para un servicio, Quantity, BuyingPrice y StockValue son siempre 0
// y SellingPrice guarda la tarifa cobrada.
//
// StockValue es un valor derivado (BuyingPrice × Quantity): se recalcula en
// cada mutación vía inventory.StockValue y nunca se acepta como entrada.
type Item struct {
	ID            string          `json:"id"`
	Type          ItemType        `json:"type"`
	Name          string          `json:"name"`
	Category      string          `json:"category"` // nombre de la categoría, no clave foránea
	Quantity      int64           `json:"quantity"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	MeasuringUnit string          `json:"measuring_unit"`
	StockValue    decimal.Decimal `json:"stock_value"`
	CreatedAt     time.Time       `json:"created_at"`
}

// IsService indica si el artículo es de la variante servicio.
func (i Item) IsService() bool { return i.Type == ItemTypeService }
