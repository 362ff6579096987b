package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/infrastructure/memory"
)

func TestClientUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewClientUseCase(memory.NewClientRepository(memory.NewStore()), nil)

	b, err := uc.Create(ctx, dto.ClientRequest{Code: "B01", Name: " Beta ", Name2: "Cotitular"})
	require.NoError(t, err)
	assert.Equal(t, "Beta", b.Name)
	_, err = uc.Create(ctx, dto.ClientRequest{Code: "A01", Name: "Acme"})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A01", list[0].Code, "ordenado por código")

	updated, err := uc.Update(ctx, b.ID, dto.ClientRequest{Name: "Beta SRL", City: "Asunción"})
	require.NoError(t, err)
	assert.Equal(t, "B01", updated.Code)
	assert.Equal(t, "Asunción", updated.City)
	assert.Empty(t, updated.Name2, "PUT reemplaza los datos de contacto")

	require.NoError(t, uc.Delete(ctx, b.ID))
	_, err = uc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewClientUseCase(memory.NewClientRepository(memory.NewStore()), nil)

	_, err := uc.Create(ctx, dto.ClientRequest{Name: "Sin código"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Create(ctx, dto.ClientRequest{Code: "indicar", Name: "Reservado"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Create(ctx, dto.ClientRequest{Code: "A01"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	c, err := uc.Create(ctx, dto.ClientRequest{Code: "A01", Name: "Acme"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.ClientRequest{Code: "A01", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, c.ID, dto.ClientRequest{Code: "Z99", Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrValidation, "el código es inmutable")
}

func TestPDFFilename(t *testing.T) {
	assert.Equal(t, "FC-1001_Juan_Perez_S.A.pdf", billing.PDFFilename("FC-1001", "Juan Pérez S.A."))
	assert.Equal(t, "RC-1002_cliente.pdf", billing.PDFFilename("RC-1002", "***"))
}

func TestClientUseCase_Import(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewClientUseCase(memory.NewClientRepository(memory.NewStore()), nil)
	_, err := uc.Create(ctx, dto.ClientRequest{Code: "A01", Name: "Acme"})
	require.NoError(t, err)

	res, err := uc.Import(ctx, []dto.ClientRequest{
		{Code: "A01", Name: "Acme SA", City: "Luque"},
		{Code: "B01", Name: "Beta"},
		{Code: "C01"},
		{Code: "", Name: "Sin código"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 4, res.Errors[0].Row)
	assert.Equal(t, "C01", res.Errors[0].Code)
	assert.Equal(t, 5, res.Errors[1].Row)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme SA", list[0].Name)
	assert.Equal(t, "Luque", list[0].City)
}

func TestClientUseCase_ImportSaltaFilasVaciasSinCorrerNumeracion(t *testing.T) {
	uc := billing.NewClientUseCase(memory.NewClientRepository(memory.NewStore()), nil)
	res, err := uc.Import(context.Background(), []dto.ClientRequest{{}, {Code: "X1"}})
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row)
}
