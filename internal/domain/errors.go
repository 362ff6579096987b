package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidCredentials = errors.New("credenciales inválidas")

	// Taxonomía del motor de comprobantes.
	ErrValidation           = errors.New("comprobante inválido")
	ErrRelationshipConflict = errors.New("la factura relacionada no admite la operación")
	// ErrNumberingConflict: el número asignado ya existe en el almacén. Reintentable.
	ErrNumberingConflict = errors.New("conflicto de numeración")
)

// ValidationError describe el primer campo del borrador que no pasó la validación.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError atajo para construir un *ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DocumentRef identifica un comprobante sin arrastrar el documento completo.
type DocumentRef struct {
	ID     string
	Number string
	Type   string
}

// RelationshipConflictError indica qué comprobante bloquea la operación sobre una factura
// (ya anulada por una nota de crédito o ya pagada por un recibo).
type RelationshipConflictError struct {
	InvoiceID     string
	InvoiceNumber string
	BlockedBy     DocumentRef
}

func (e *RelationshipConflictError) Error() string {
	return fmt.Sprintf("la factura %s ya está referenciada por %s (%s)",
		e.InvoiceNumber, e.BlockedBy.Number, e.BlockedBy.Type)
}

func (e *RelationshipConflictError) Unwrap() error { return ErrRelationshipConflict }
