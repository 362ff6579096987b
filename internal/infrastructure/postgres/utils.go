package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Nombres de constraints definidos en las migraciones.
const (
	constraintDocumentNumber  = "documents_number_uq"
	constraintDocumentRelated = "documents_related_invoice_uq"
	constraintClientCode      = "clients_code_uq"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation 23503.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// constraintOf nombre del constraint violado ("" si no es un error de Postgres).
func constraintOf(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}
