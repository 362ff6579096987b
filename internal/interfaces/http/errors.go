package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/pkg/logger"
)

// Códigos de error de la API.
const (
	CodeValidation           = "VALIDATION"
	CodeInvalidBody          = "INVALID_BODY"
	CodeRelationshipConflict = "RELATIONSHIP_CONFLICT"
	CodeNumberingConflict    = "NUMBERING_CONFLICT"
	CodeDuplicate            = "DUPLICATE"
	CodeConflict             = "CONFLICT"
	CodeNotFound             = "NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeForbidden            = "FORBIDDEN"
	CodeInternal             = "INTERNAL"
)

// errorMapper traduce errores de dominio a respuestas HTTP. Los 500 se registran y no exponen el detalle.
type errorMapper struct {
	log *logger.Logger
}

func (m errorMapper) write(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	var rerr *domain.RelationshipConflictError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeValidation, Message: verr.Message, Field: verr.Field,
		})
	case errors.As(err, &rerr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    CodeRelationshipConflict,
			Message: rerr.Error(),
			BlockedBy: &dto.DocumentRef{
				ID: rerr.BlockedBy.ID, Number: rerr.BlockedBy.Number, Type: rerr.BlockedBy.Type,
			},
		})
	case errors.Is(err, domain.ErrRelationshipConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: CodeRelationshipConflict, Message: domain.ErrRelationshipConflict.Error(),
		})
	case errors.Is(err, domain.ErrNumberingConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: CodeNumberingConflict, Message: "no se pudo asignar un número libre, reintente",
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeDuplicate, Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeConflict, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeInvalidCredentials, Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeUnauthorized, Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: err.Error()})
	}
	m.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}
