package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

// Totals totales derivados de las líneas. Sin redondeo: se redondea sólo al presentar.
type Totals struct {
	Subtotal  decimal.Decimal
	Discounts decimal.Decimal
	Total     decimal.Decimal
}

// CalculateTotals subtotal = Σ precio·cant, descuentos = Σ descuento·cant, total = subtotal - descuentos.
func CalculateTotals(items []entity.LineItem) Totals {
	subtotal := decimal.Zero
	discounts := decimal.Zero
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		subtotal = subtotal.Add(it.Price.Mul(qty))
		discounts = discounts.Add(it.Discount.Mul(qty))
	}
	return Totals{
		Subtotal:  subtotal,
		Discounts: discounts,
		Total:     subtotal.Sub(discounts),
	}
}

// Negate aplica la convención contable de los recibos vinculados.
func (t Totals) Negate() Totals {
	return Totals{
		Subtotal:  t.Subtotal.Abs().Neg(),
		Discounts: t.Discounts.Abs().Neg(),
		Total:     t.Total.Abs().Neg(),
	}
}
