// Package query implementa el pipeline genérico filtro → orden → paginación
// que comparten todos los listados (artículos y clientes). Nunca muta el
// snapshot de entrada; cada paso devuelve un slice nuevo.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey clave de ordenamiento de un listado.
type SortKey string

const (
	KeyName         SortKey = "name"
	KeyCategory     SortKey = "category"
	KeyQuantity     SortKey = "quantity"
	KeyBuyingPrice  SortKey = "buying_price"
	KeySellingPrice SortKey = "selling_price"
	KeyStockValue   SortKey = "stock_value"
	KeyCreatedAt    SortKey = "created_at"
	KeyTotalOrders  SortKey = "total_orders"
	KeyPhone        SortKey = "phone"
)

// Direction sentido del ordenamiento.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Kind tipo del valor de una clave de orden.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTime
)

// Value valor tipado de una clave de orden para una fila. Absent marca "no
// aplica" (por ejemplo cantidad de un servicio): ordena antes que cualquier
// valor presente en ascendente y después en descendente, sin necesidad de
// centinelas numéricos mágicos.
type Value struct {
	Kind   Kind
	Absent bool
	str    string
	num    decimal.Decimal
	ts     time.Time
}

// String valor de cadena presente.
func String(s string) Value { return Value{Kind: KindString, str: s} }

// Number valor numérico presente.
func Number(d decimal.Decimal) Value { return Value{Kind: KindNumber, num: d} }

// Time valor temporal presente.
func Time(t time.Time) Value { return Value{Kind: KindTime, ts: t} }

// Absent valor ausente ("no aplica") del tipo indicado.
func Absent(k Kind) Value { return Value{Kind: k, Absent: true} }

// Row es la vista mínima que el pipeline necesita de cada fila.
type Row interface {
	// FilterTerms textos contra los que se hace el match de búsqueda.
	FilterTerms() []string
	// SortValue valor de la fila para una clave de orden.
	SortValue(k SortKey) Value
}

// collator comparación de cadenas con colación (sin distinguir mayúsculas,
// anchos ni diacríticos). Un collator no es seguro para uso concurrente, por
// eso se crea uno por ordenamiento.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.Loose)
}

// compare orden total entre dos valores de la misma clave: ausente < presente,
// luego el orden natural del tipo.
func compare(a, b Value, col *collate.Collator) int {
	switch {
	case a.Absent && b.Absent:
		return 0
	case a.Absent:
		return -1
	case b.Absent:
		return 1
	}
	switch a.Kind {
	case KindNumber:
		return a.num.Cmp(b.num)
	case KindTime:
		return a.ts.Compare(b.ts)
	default:
		return col.CompareString(a.str, b.str)
	}
}

// Filter conserva las filas cuyo texto contiene la consulta, sin distinguir
// mayúsculas. Consulta vacía devuelve una copia del listado completo.
func Filter[T Row](items []T, q string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]T, 0, len(items))
	if q == "" {
		return append(out, items...)
	}
	for _, it := range items {
		for _, term := range it.FilterTerms() {
			if strings.Contains(strings.ToLower(term), q) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Sort ordena de forma estable según la clave y dirección; filas empatadas
// conservan su orden relativo de entrada.
func Sort[T Row](items []T, key SortKey, dir Direction) []T {
	out := make([]T, len(items))
	copy(out, items)
	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i].SortValue(key), out[j].SortValue(key), col)
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// DefaultDirection dirección inicial al seleccionar una clave nueva:
// ascendente, salvo createdAt que arranca descendente ("más reciente primero").
func DefaultDirection(k SortKey) Direction {
	if k == KeyCreatedAt {
		return Descending
	}
	return Ascending
}

// State clave y dirección vigentes de un listado.
type State struct {
	Key SortKey
	Dir Direction
}

// Toggle selecciona una clave: repetir la clave vigente invierte la dirección;
// una clave nueva reinicia a su dirección por defecto.
func (s *State) Toggle(k SortKey) {
	if s.Key == k {
		if s.Dir == Ascending {
			s.Dir = Descending
		} else {
			s.Dir = Ascending
		}
		return
	}
	s.Key = k
	s.Dir = DefaultDirection(k)
}
