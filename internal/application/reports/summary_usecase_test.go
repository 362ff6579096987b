package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/infrastructure/memory"
)

func seed(t *testing.T, repo *memory.DocumentRepo, number string, typ entity.DocumentType, client, month, total string, related *entity.RelatedInvoice) *entity.Document {
	t.Helper()
	d := &entity.Document{
		ID:         "id-" + number,
		Number:     number,
		Type:       typ,
		ClientID:   "c-" + client,
		ClientCode: client,
		ClientName: client,
		IssueDate:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
		Month:      month,
		Total:      decimal.RequireFromString(total),
		Related:    related,
	}
	require.NoError(t, repo.Create(context.Background(), d))
	return d
}

func TestGetSummary_ConteosYTotalesPorMes(t *testing.T) {
	s := memory.NewStore()
	docs := memory.NewDocumentRepository(s)
	fc := seed(t, docs, "FC-1001", entity.TypeInvoice, "Acme", "2024-01", "100.005", nil)
	seed(t, docs, "FC-1002", entity.TypeInvoice, "Beta", "2024-02", "50", nil)
	seed(t, docs, "RC-1001", entity.TypeReceipt, "Acme", "2024-01", "100.005", &entity.RelatedInvoice{ID: fc.ID, Number: fc.Number})

	uc := NewSummaryUseCase(memory.NewReportRepository(s))
	res, err := uc.GetSummary(context.Background(), dto.DocumentListFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Invoices)
	assert.Equal(t, 1, res.Receipts)
	assert.Equal(t, 0, res.CreditNotes)
	assert.Equal(t, 3, res.Records)
	assert.True(t, decimal.RequireFromString("250.01").Equal(res.Total), res.Total.String())
	assert.Equal(t, "USD 250,01", res.TotalFormatted)
	require.Len(t, res.ByMonth, 2)
	assert.Equal(t, "2024-01", res.ByMonth[0].Month)
	assert.Equal(t, "2024-02", res.ByMonth[1].Month)
	assert.Equal(t, "USD 50,00", res.ByMonth[1].Formatted)
}

func TestGetSummary_Filtros(t *testing.T) {
	s := memory.NewStore()
	docs := memory.NewDocumentRepository(s)
	seed(t, docs, "FC-1001", entity.TypeInvoice, "Acme", "2024-01", "100", nil)
	seed(t, docs, "FC-1002", entity.TypeInvoice, "Beta", "2024-02", "50", nil)

	uc := NewSummaryUseCase(memory.NewReportRepository(s))
	res, err := uc.GetSummary(context.Background(), dto.DocumentListFilter{Client: "acm"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Records)

	_, err = uc.GetSummary(context.Background(), dto.DocumentListFilter{Type: "XX"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
