package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
)

// ClientHandler padrón de clientes y facturas abiertas por cliente.
type ClientHandler struct {
	uc     *billing.ClientUseCase
	docs   *billing.DocumentUseCase
	reader ClientReader
	errs   errorMapper
}

// ClientReader interpreta un padrón en planilla (spreadsheet.ReadClients).
type ClientReader func(r io.Reader, filename, encoding string) ([]dto.ClientRequest, error)

// NewClientHandler construye el handler.
func NewClientHandler(uc *billing.ClientUseCase, docs *billing.DocumentUseCase, reader ClientReader, errs errorMapper) *ClientHandler {
	return &ClientHandler{uc: uc, docs: docs, reader: reader, errs: errs}
}

// List godoc
// @Summary      Listar clientes (ordenados por código)
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ClientResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ClientRequest  true  "cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente (el código no cambia)
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "ID del cliente"
// @Param        body  body  dto.ClientRequest  true  "cliente"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         clients
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// OpenInvoices godoc
// @Summary      Facturas del cliente que admiten nota de crédito o recibo
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path   string  true  "ID del cliente"
// @Param        for  query  string  true  "credit-note | receipt"
// @Success      200  {array}   dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/open-invoices [get]
func (h *ClientHandler) OpenInvoices(c *fiber.Ctx) error {
	out, err := h.docs.OpenInvoices(c.UserContext(), c.Params("id"), c.Query("for"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar el padrón desde XLSX o CSV
// @Description  Alta o actualización por código. La primera fila es la cabecera. Las filas inválidas se informan sin detener la importación.
// @Tags         clients
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file      formData  file    true   "planilla .xlsx o .csv"
// @Param        encoding  formData  string  false  "utf-8 (por defecto), latin1 o windows-1252; sólo CSV"
// @Success      200  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/clients/import [post]
func (h *ClientHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return h.errs.write(c, domain.NewValidationError("file", "adjunte la planilla en el campo file"))
	}
	f, err := fh.Open()
	if err != nil {
		return h.errs.write(c, err)
	}
	defer f.Close()

	rows, err := h.reader(f, fh.Filename, c.FormValue("encoding"))
	if err != nil {
		return h.errs.write(c, domain.NewValidationError("file", err.Error()))
	}
	out, err := h.uc.Import(c.UserContext(), rows)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
