package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// MonthTotal total facturado de un mes.
type MonthTotal struct {
	Month string
	Total decimal.Decimal
}

// SummaryResult resultado crudo del resumen. Lo produce el almacén; el use case lo convierte en DTO.
type SummaryResult struct {
	Invoices    int
	Receipts    int
	CreditNotes int
	Records     int
	Total       decimal.Decimal // suma de totales tal como están guardados
	ByMonth     []MonthTotal    // ordenado por mes ascendente
}

// ReportRepository consultas de lectura para reportes. Las implementaciones no modifican datos.
type ReportRepository interface {
	Summary(ctx context.Context, filter DocumentFilter) (*SummaryResult, error)
}
