package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/application/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler maneja los endpoints de reportes.
type ReportHandler struct {
	uc     *reports.SummaryUseCase
	export *reports.ExportUseCase
	errs   errorMapper
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.SummaryUseCase, export *reports.ExportUseCase, errs errorMapper) *ReportHandler {
	return &ReportHandler{uc: uc, export: export, errs: errs}
}

// Summary godoc
// @Summary      Resumen del historial
// @Description  Conteos por tipo, total, cantidad de registros y totales por mes. Acepta los filtros del historial.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        client  query  string  false  "subcadena del nombre del cliente"
// @Param        type    query  string  false  "tipo de comprobante"
// @Param        month   query  string  false  "prefijo YYYY o YYYY-MM"
// @Success      200  {object}  dto.ReportSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	var f dto.DocumentListFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.GetSummary(c.UserContext(), f)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar el historial a Excel
// @Description  Una fila por comprobante con estado y factura relacionada. Acepta los filtros del historial.
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        client  query  string  false  "subcadena del nombre del cliente"
// @Param        type    query  string  false  "tipo de comprobante"
// @Param        month   query  string  false  "prefijo YYYY o YYYY-MM"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var f dto.DocumentListFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	data, filename, err := h.export.ExportHistory(c.UserContext(), f)
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
