package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
)

// DocumentHandler emisión, historial y descarga de comprobantes.
type DocumentHandler struct {
	uc   *billing.DocumentUseCase
	pdf  *billing.PDFUseCase
	errs errorMapper
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *billing.DocumentUseCase, pdf *billing.PDFUseCase, errs errorMapper) *DocumentHandler {
	return &DocumentHandler{uc: uc, pdf: pdf, errs: errs}
}

// Create godoc
// @Summary      Emitir comprobante (factura, recibo o nota de crédito)
// @Description  El número se asigna en el servidor. NC y RC requieren related_invoice_id de una factura abierta del mismo cliente.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateDocumentRequest  true  "borrador"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de comprobantes
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        client  query  string  false  "subcadena del nombre del cliente"
// @Param        type    query  string  false  "Factura | Recibo | Nota de Crédito | FC | RC | NC"
// @Param        month   query  string  false  "prefijo YYYY o YYYY-MM"
// @Success      200  {array}   dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var f dto.DocumentListFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener comprobante
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar comprobante del historial
// @Description  Una factura referenciada por una NC o un RC no se puede borrar.
// @Tags         documents
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del comprobante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// NextNumber godoc
// @Summary      Vista previa del próximo número
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        type  query  string  true  "tipo de comprobante"
// @Success      200  {object}  dto.NextNumberResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/next-number [get]
func (h *DocumentHandler) NextNumber(c *fiber.Ctx) error {
	out, err := h.uc.NextNumber(c.UserContext(), c.Query("type"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// DraftItems godoc
// @Summary      Líneas de una factura para precargar un borrador
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {array}   dto.LineItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/items [get]
func (h *DocumentHandler) DraftItems(c *fiber.Ctx) error {
	out, err := h.uc.DraftItems(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar la representación gráfica
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del comprobante"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdf.DownloadDocumentPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// Catalog godoc
// @Summary      Catálogo de servicios
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.CatalogEntry
// @Router       /api/catalog [get]
func (h *DocumentHandler) Catalog(c *fiber.Ctx) error {
	return c.JSON(h.uc.Catalog())
}
