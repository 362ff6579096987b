package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/pkg/config"
)

func sampleDocument(t entity.DocumentType) *entity.Document {
	issue := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	doc := &entity.Document{
		ID:         "d1",
		Number:     t.Prefix() + "-1001",
		Type:       t,
		ClientID:   "c1",
		ClientName: "Juan Pérez",
		IssueDate:  issue,
		DueDate:    issue.AddDate(0, 0, 7),
		Month:      "2024-01",
		Subtotal:   decimal.RequireFromString("100"),
		Discounts:  decimal.RequireFromString("10"),
		Total:      decimal.RequireFromString("90"),
		Items: []entity.LineItem{{
			ServiceCode: "L7", ServiceName: "Hosting L7", Month: "2024-01", Quantity: 1,
			Price: decimal.RequireFromString("100"), Discount: decimal.RequireFromString("10"),
		}},
	}
	if t == entity.TypeCreditNote {
		doc.Subtotal, doc.Discounts, doc.Total = doc.Subtotal.Neg(), doc.Discounts.Neg(), doc.Total.Neg()
		doc.Related = &entity.RelatedInvoice{ID: "f1", Number: "FC-1001"}
	}
	if t == entity.TypeReceipt {
		paid := issue.AddDate(0, 0, 3)
		doc.PaymentDate = &paid
		doc.Related = &entity.RelatedInvoice{ID: "f1", Number: "FC-1001"}
	}
	return doc
}

func TestGenerateDocumentPDF_TodosLosTipos(t *testing.T) {
	g := NewMarotoPDFGenerator(config.IssuerConfig{Name: "HRS GROUP S.A", Address: "Juan de Salazar 1857", TaxID: "80144251-6"})
	client := &entity.Client{ID: "c1", Code: "C01", Name: "Juan Pérez", Email: "jp@example.com", Name2: "Ana Gómez"}

	for _, typ := range []entity.DocumentType{entity.TypeInvoice, entity.TypeReceipt, entity.TypeCreditNote} {
		t.Run(string(typ), func(t *testing.T) {
			out, err := g.GenerateDocumentPDF(context.Background(), sampleDocument(typ), client)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestGenerateDocumentPDF_SinClienteEnPadron(t *testing.T) {
	g := NewMarotoPDFGenerator(config.IssuerConfig{Name: "HRS GROUP S.A"})
	out, err := g.GenerateDocumentPDF(context.Background(), sampleDocument(entity.TypeInvoice), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "FACTURA CREDITO", Title(entity.TypeInvoice))
	assert.Equal(t, "RECIBO", Title(entity.TypeReceipt))
	assert.Equal(t, "NOTA DE CRÉDITO", Title(entity.TypeCreditNote))
}

func TestMonthRange(t *testing.T) {
	assert.Equal(t, "01/02-29/02", MonthRange("2024-02"))
	assert.Equal(t, "01/02-28/02", MonthRange("2023-02"))
	assert.Equal(t, "01/12-31/12", MonthRange("2024-12"))
	assert.Equal(t, "sin-mes", MonthRange("sin-mes"))
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "ENE 5, 2024", longDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
}
