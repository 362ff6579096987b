package dto

import "github.com/shopspring/decimal"

// MonthTotalDTO total de un mes, redondeado a 2 decimales.
type MonthTotalDTO struct {
	Month     string          `json:"month"`
	Total     decimal.Decimal `json:"total"`
	Formatted string          `json:"formatted"` // USD con formato es-PY
}

// ReportSummaryDTO resumen de GET /api/reports/summary.
type ReportSummaryDTO struct {
	Invoices       int             `json:"facturas"`
	Receipts       int             `json:"recibos"`
	CreditNotes    int             `json:"notas_credito"`
	Records        int             `json:"registros"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"total_formatted"`
	ByMonth        []MonthTotalDTO `json:"por_mes"`
}
