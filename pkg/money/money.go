// Package money formatea montos para presentación. Es un colaborador de solo
// salida: la lógica del dominio opera siempre sobre decimal.Decimal y nunca
// consume estas cadenas.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.LatinAmericanSpanish)

// Format presenta un monto con separador de miles y dos decimales: $1.600,00.
func Format(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return printer.Sprintf("$%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
