package entity

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// MaxRecentOrders tope del historial reciente por cliente (más reciente primero).
const MaxRecentOrders = 5

// Order resumen de una venta asociada a un cliente.
type Order struct {
	ID     string          `json:"id"`
	Total  decimal.Decimal `json:"total"`
	Detail string          `json:"detail,omitempty"`
	Date   time.Time       `json:"date"`
}

// Customer representa un cliente. Phone guarda el texto tal como lo escribió
// el usuario; las búsquedas y la unicidad usan la clave canónica (solo dígitos).
type Customer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	TotalOrders  int       `json:"total_orders"`
	RecentOrders []Order   `json:"recent_orders"`
	CreatedAt    time.Time `json:"created_at"`
}

// CanonicalPhone clave canónica de un teléfono: solo los dígitos, en orden.
// No normaliza ceros iniciales ni prefijos de país: "712345678" y "0712345678"
// son claves distintas (comportamiento observado y preservado a propósito).
func CanonicalPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalEmail clave canónica de un correo: minúsculas y sin espacios alrededor.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
