package reports

import (
	"context"
	"fmt"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
)

// HistoryFilename nombre del libro descargado.
const HistoryFilename = "Historial_Facturas.xlsx"

// HistoryExporter serializa el historial a una planilla.
type HistoryExporter interface {
	ExportHistory(ctx context.Context, docs []*dto.DocumentResponse) ([]byte, error)
}

// HistoryLister historial con estado por factura (billing.DocumentUseCase).
type HistoryLister interface {
	List(ctx context.Context, in dto.DocumentListFilter) ([]*dto.DocumentResponse, error)
}

// ExportUseCase exportación del historial filtrado.
type ExportUseCase struct {
	history  HistoryLister
	exporter HistoryExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(history HistoryLister, exporter HistoryExporter) *ExportUseCase {
	return &ExportUseCase{history: history, exporter: exporter}
}

// ExportHistory devuelve (xlsx, filename, nil) con los mismos filtros que GET /api/documents.
func (uc *ExportUseCase) ExportHistory(ctx context.Context, in dto.DocumentListFilter) ([]byte, string, error) {
	docs, err := uc.history.List(ctx, in)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.exporter.ExportHistory(ctx, docs)
	if err != nil {
		return nil, "", fmt.Errorf("exportar historial: %w", err)
	}
	return out, HistoryFilename, nil
}
