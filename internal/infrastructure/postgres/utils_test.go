package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraintClientCode})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isForeignKeyViolation(err))
	assert.Equal(t, constraintClientCode, constraintOf(err))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}

func TestMapInsertError_NumeroRepetidoEsConflictoDeNumeracion(t *testing.T) {
	r := NewDocumentRepository(nil)
	doc := &entity.Document{Number: "FC-1001"}
	err := r.mapInsertError(doc, &pgconn.PgError{Code: "23505", ConstraintName: constraintDocumentNumber})
	assert.ErrorIs(t, err, domain.ErrNumberingConflict)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestMapInsertError_FacturaInexistenteEsValidacion(t *testing.T) {
	r := NewDocumentRepository(nil)
	doc := &entity.Document{Number: "NC-1001", Related: &entity.RelatedInvoice{ID: "x"}}
	err := r.mapInsertError(doc, &pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// El repo se construye sin Querier: cualquier consulta dentro de la transacción abortada entraría en pánico.
func TestMapInsertError_FacturaYaReferenciadaNoConsulta(t *testing.T) {
	r := NewDocumentRepository(nil)
	doc := &entity.Document{Number: "RC-1002", Related: &entity.RelatedInvoice{ID: "fc", Number: "FC-1001"}}
	var err error
	assert.NotPanics(t, func() {
		err = r.mapInsertError(doc, &pgconn.PgError{Code: "23505", ConstraintName: constraintDocumentRelated})
	})
	assert.ErrorIs(t, err, domain.ErrRelationshipConflict)
	assert.Contains(t, err.Error(), "FC-1001")
}
