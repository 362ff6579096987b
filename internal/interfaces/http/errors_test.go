package http

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/pkg/logger"
)

func writeError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	m := errorMapper{log: logger.Nop()}
	app.Get("/", func(c *fiber.Ctx) error { return m.write(c, err) })

	resp, rerr := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, rerr)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorMapper_ConflictoRelacionSinDetalle(t *testing.T) {
	status, body := writeError(t, fmt.Errorf("delete document: %w", domain.ErrRelationshipConflict))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, CodeRelationshipConflict, body.Code)
	assert.Nil(t, body.BlockedBy)
}

func TestErrorMapper_ConflictoRelacionConBloqueante(t *testing.T) {
	err := &domain.RelationshipConflictError{
		InvoiceID:     "fc",
		InvoiceNumber: "FC-1001",
		BlockedBy:     domain.DocumentRef{ID: "nc", Number: "NC-1001", Type: string(entity.TypeCreditNote)},
	}
	status, body := writeError(t, fmt.Errorf("delete document: %w", err))
	assert.Equal(t, fiber.StatusConflict, status)
	require.NotNil(t, body.BlockedBy)
	assert.Equal(t, "NC-1001", body.BlockedBy.Number)
}

func TestErrorMapper_DesconocidoEsInterno(t *testing.T) {
	status, body := writeError(t, fmt.Errorf("algo raro"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, CodeInternal, body.Code)
}
