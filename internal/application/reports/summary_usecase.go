// Package reports contiene los casos de uso de reportes sobre el historial de comprobantes.
package reports

import (
	"context"

	"github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
	"github.com/jlvilasoler/hashrate-app/pkg/money"
)

// SummaryUseCase resumen del historial: conteos por tipo, total y totales por mes.
//
// Fuente de datos: ReportRepository (consultas read-only).
type SummaryUseCase struct {
	reportRepo repository.ReportRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(reportRepo repository.ReportRepository) *SummaryUseCase {
	return &SummaryUseCase{reportRepo: reportRepo}
}

// GetSummary aplica los mismos filtros que el historial. Los importes se redondean a 2 decimales.
func (uc *SummaryUseCase) GetSummary(ctx context.Context, in dto.DocumentListFilter) (*dto.ReportSummaryDTO, error) {
	filter, err := billing.ToDocumentFilter(in)
	if err != nil {
		return nil, err
	}
	res, err := uc.reportRepo.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}

	total := res.Total.Round(2)
	out := &dto.ReportSummaryDTO{
		Invoices:       res.Invoices,
		Receipts:       res.Receipts,
		CreditNotes:    res.CreditNotes,
		Records:        res.Records,
		Total:          total,
		TotalFormatted: money.FormatUSD(total),
		ByMonth:        make([]dto.MonthTotalDTO, 0, len(res.ByMonth)),
	}
	for _, m := range res.ByMonth {
		mt := m.Total.Round(2)
		out.ByMonth = append(out.ByMonth, dto.MonthTotalDTO{
			Month:     m.Month,
			Total:     mt,
			Formatted: money.FormatUSD(mt),
		})
	}
	return out, nil
}
