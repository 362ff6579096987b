// Package money formatea montos en dólares con la convención es-PY (coma decimal, punto de miles).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// Format redondea a 2 decimales y aplica separadores locales: 12345.5 -> "12.345,50".
func Format(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// FormatUSD igual que Format con el prefijo de moneda.
func FormatUSD(d decimal.Decimal) string {
	return "USD " + Format(d)
}
