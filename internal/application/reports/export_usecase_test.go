package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
)

type fakeLister struct {
	docs []*dto.DocumentResponse
	got  dto.DocumentListFilter
	err  error
}

func (f *fakeLister) List(_ context.Context, in dto.DocumentListFilter) ([]*dto.DocumentResponse, error) {
	f.got = in
	return f.docs, f.err
}

type fakeExporter struct {
	rows int
	err  error
}

func (f *fakeExporter) ExportHistory(_ context.Context, docs []*dto.DocumentResponse) ([]byte, error) {
	f.rows = len(docs)
	return []byte("xlsx"), f.err
}

func TestExportHistory_PasaFiltroYNombre(t *testing.T) {
	lister := &fakeLister{docs: []*dto.DocumentResponse{{Number: "FC-1001"}, {Number: "RC-1001"}}}
	exp := &fakeExporter{}
	uc := NewExportUseCase(lister, exp)

	out, name, err := uc.ExportHistory(context.Background(), dto.DocumentListFilter{Month: "2024-01"})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)
	assert.Equal(t, HistoryFilename, name)
	assert.Equal(t, "2024-01", lister.got.Month)
	assert.Equal(t, 2, exp.rows)
}

func TestExportHistory_ErrorDeFiltro(t *testing.T) {
	uc := NewExportUseCase(&fakeLister{err: domain.NewValidationError("type", "tipo de comprobante inválido")}, &fakeExporter{})
	_, _, err := uc.ExportHistory(context.Background(), dto.DocumentListFilter{Type: "XX"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExportHistory_ErrorDelExportador(t *testing.T) {
	uc := NewExportUseCase(&fakeLister{}, &fakeExporter{err: errors.New("disco lleno")})
	_, _, err := uc.ExportHistory(context.Background(), dto.DocumentListFilter{})
	assert.Error(t, err)
}
