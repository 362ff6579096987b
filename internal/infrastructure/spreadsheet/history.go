// Package spreadsheet exporta el historial a Excel e importa el padrón de clientes desde XLSX o CSV.
package spreadsheet

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
)

const historySheet = "Historial"

var historyHeader = []any{"Número", "Tipo", "Cliente", "Fecha", "Vencimiento", "Mes", "Subtotal", "Descuentos", "Total", "Estado", "Factura relacionada"}

// HistoryExporter genera el libro del historial con excelize.
type HistoryExporter struct{}

// NewHistoryExporter construye el exportador.
func NewHistoryExporter() *HistoryExporter { return &HistoryExporter{} }

// ExportHistory una fila por comprobante; los importes van como números con el signo guardado.
func (e *HistoryExporter) ExportHistory(_ context.Context, docs []*dto.DocumentResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), historySheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}
	if err := f.SetSheetRow(historySheet, "A1", &historyHeader); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(historyHeader))
	if err := f.SetCellStyle(historySheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}

	for i, d := range docs {
		related := ""
		if d.Related != nil {
			related = d.Related.Number
		}
		row := []any{
			d.Number, d.Type, d.ClientName, d.IssueDate, d.DueDate, d.Month,
			d.Subtotal.Round(2).InexactFloat64(),
			d.Discounts.Round(2).InexactFloat64(),
			d.Total.Round(2).InexactFloat64(),
			d.Status, related,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if len(docs) > 0 {
		if err := f.SetCellStyle(historySheet, "G2", fmt.Sprintf("I%d", len(docs)+1), amount); err != nil {
			return nil, err
		}
	}
	widths := map[string]float64{"A": 14, "B": 16, "C": 30, "D": 12, "E": 12, "F": 10, "G": 12, "H": 12, "I": 12, "J": 10, "K": 18}
	for col, w := range widths {
		if err := f.SetColWidth(historySheet, col, col, w); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
