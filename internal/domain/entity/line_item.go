package entity

import "github.com/shopspring/decimal"

// LineItem línea de servicio de un comprobante. Se copia, nunca se comparte, entre comprobantes.
type LineItem struct {
	ServiceCode string
	ServiceName string
	Month       string // YYYY-MM
	Quantity    int
	Price       decimal.Decimal // precio unitario
	Discount    decimal.Decimal // descuento por unidad
}

// Total = (precio - descuento) × cantidad.
func (li LineItem) Total() decimal.Decimal {
	return li.Price.Sub(li.Discount).Mul(decimal.NewFromInt(int64(li.Quantity)))
}
