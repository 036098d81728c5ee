package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/negocio-api/internal/domain/entity"
)

// StockValue valor de inventario de un producto: precio de compra × cantidad.
// Es el único punto de cálculo; toda ruta de mutación debe pasar por aquí
// para que el campo derivado nunca diverja de sus fuentes.
func StockValue(buyingPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return buyingPrice.Mul(decimal.NewFromInt(quantity))
}

// Summary agregados derivados del catálogo completo.
type Summary struct {
	TotalItems      int             // artículos en catálogo (productos + servicios)
	TotalStockCount int64           // Σ cantidad; los servicios aportan 0
	EstimatedSales  decimal.Decimal // Σ precio de venta × cantidad; los servicios aportan 0
	TotalStockValue decimal.Decimal // Σ valor de inventario
}

// Summarize recorre el listado y acumula los agregados. Función pura: no toca
// los stores ni muta el slice de entrada.
func Summarize(items []entity.Item) Summary {
	s := Summary{
		TotalItems:      len(items),
		EstimatedSales:  decimal.Zero,
		TotalStockValue: decimal.Zero,
	}
	for _, it := range items {
		switch it.Type {
		case entity.ItemTypeService:
			// los servicios no llevan stock: cantidad 0 los excluye de todos
			// los agregados aunque tengan tarifa de venta
		case entity.ItemTypeProduct:
			qty := decimal.NewFromInt(it.Quantity)
			s.TotalStockCount += it.Quantity
			s.EstimatedSales = s.EstimatedSales.Add(it.SellingPrice.Mul(qty))
			s.TotalStockValue = s.TotalStockValue.Add(it.StockValue)
		}
	}
	return s
}
