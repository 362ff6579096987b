package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

func doc(id, number string, t entity.DocumentType, client, month string, total int64) *entity.Document {
	return &entity.Document{
		ID: id, Number: number, Type: t, ClientID: "c-" + client, ClientName: client, Month: month,
		Total: decimal.NewFromInt(total),
		Items: []entity.LineItem{{ServiceCode: "A", Month: month, Quantity: 1, Price: decimal.NewFromInt(total)}},
	}
}

func TestDocumentRepo_NumeroRepetido(t *testing.T) {
	ctx := context.Background()
	r := NewDocumentRepository(NewStore())
	require.NoError(t, r.Create(ctx, doc("1", "FC-1001", entity.TypeInvoice, "Acme", "2024-01", 100)))

	err := r.Create(ctx, doc("2", "FC-1001", entity.TypeInvoice, "Acme", "2024-01", 100))
	assert.ErrorIs(t, err, domain.ErrNumberingConflict)
}

func TestDocumentRepo_UnSoloComprobantePorFactura(t *testing.T) {
	ctx := context.Background()
	r := NewDocumentRepository(NewStore())
	inv := doc("fc", "FC-1001", entity.TypeInvoice, "Acme", "2024-01", 100)
	require.NoError(t, r.Create(ctx, inv))

	nc := doc("nc", "NC-1001", entity.TypeCreditNote, "Acme", "2024-01", 100)
	nc.Related = &entity.RelatedInvoice{ID: "fc", Number: "FC-1001"}
	require.NoError(t, r.Create(ctx, nc))

	rc := doc("rc", "RC-1001", entity.TypeReceipt, "Acme", "2024-01", -100)
	rc.Related = &entity.RelatedInvoice{ID: "fc", Number: "FC-1001"}
	err := r.Create(ctx, rc)
	var conflict *domain.RelationshipConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "NC-1001", conflict.BlockedBy.Number)

	orphan := doc("rc2", "RC-1002", entity.TypeReceipt, "Acme", "2024-01", -100)
	orphan.Related = &entity.RelatedInvoice{ID: "no-existe"}
	assert.ErrorIs(t, r.Create(ctx, orphan), domain.ErrValidation)
}

func TestDocumentRepo_DeleteFacturaReferenciadaFalla(t *testing.T) {
	ctx := context.Background()
	r := NewDocumentRepository(NewStore())
	require.NoError(t, r.Create(ctx, doc("fc", "FC-1001", entity.TypeInvoice, "Acme", "2024-01", 100)))
	nc := doc("nc", "NC-1001", entity.TypeCreditNote, "Acme", "2024-01", 100)
	nc.Related = &entity.RelatedInvoice{ID: "fc", Number: "FC-1001"}
	require.NoError(t, r.Create(ctx, nc))

	err := r.Delete(ctx, "fc")
	var conflict *domain.RelationshipConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "NC-1001", conflict.BlockedBy.Number)
	require.NoError(t, r.Delete(ctx, "nc"))
	require.NoError(t, r.Delete(ctx, "fc"))
	assert.ErrorIs(t, r.Delete(ctx, "fc"), domain.ErrNotFound)
}

func TestDocumentRepo_MarcaDeSerieNoBajaAlBorrar(t *testing.T) {
	ctx := context.Background()
	r := NewDocumentRepository(NewStore())
	n, err := r.LastIssued(ctx, "FC")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, r.Create(ctx, doc("1", "FC-1001", entity.TypeInvoice, "Acme", "2024-01", 100)))
	require.NoError(t, r.Create(ctx, doc("2", "FC1007", entity.TypeInvoice, "Acme", "2024-01", 100)))
	require.NoError(t, r.Delete(ctx, "2"))

	n, err = r.LastIssued(ctx, "FC")
	require.NoError(t, err)
	assert.Equal(t, 1007, n)
	n, _ = r.LastIssued(ctx, "RC")
	assert.Zero(t, n)
}

func TestDocumentRepo_ListFiltraYDevuelveCopias(t *testing.T) {
	ctx := context.Background()
	r := NewDocumentRepository(NewStore())
	require.NoError(t, r.Create(ctx, doc("1", "FC-1001", entity.TypeInvoice, "Acme SA", "2024-01", 100)))
	require.NoError(t, r.Create(ctx, doc("2", "FC-1002", entity.TypeInvoice, "Beta", "2024-02", 250)))
	require.NoError(t, r.Create(ctx, doc("3", "RC-1001", entity.TypeReceipt, "acme sa", "2024-02", 250)))

	got, err := r.List(ctx, repository.DocumentFilter{Client: "ACME"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = r.List(ctx, repository.DocumentFilter{Month: "2024-02", Type: entity.TypeInvoice})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FC-1002", got[0].Number)

	got[0].Items[0].Quantity = 50
	again, _ := r.GetByID(ctx, "2")
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestReportRepo_Summary(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	docs := NewDocumentRepository(s)
	require.NoError(t, docs.Create(ctx, doc("1", "FC-1001", entity.TypeInvoice, "Acme", "2024-02", 100)))
	require.NoError(t, docs.Create(ctx, doc("2", "FC-1002", entity.TypeInvoice, "Acme", "2024-01", 250)))
	require.NoError(t, docs.Create(ctx, doc("3", "RC-1001", entity.TypeReceipt, "Acme", "2024-02", -100)))

	res, err := NewReportRepository(s).Summary(ctx, repository.DocumentFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Invoices)
	assert.Equal(t, 1, res.Receipts)
	assert.Equal(t, 3, res.Records)
	assert.Equal(t, "250", res.Total.String())
	require.Len(t, res.ByMonth, 2)
	assert.Equal(t, "2024-01", res.ByMonth[0].Month)
	assert.True(t, res.ByMonth[1].Total.IsZero())
}

func TestClientRepo_CodigoUnicoEInmutable(t *testing.T) {
	ctx := context.Background()
	r := NewClientRepository(NewStore())
	c := &entity.Client{Code: "C01", Name: "Acme"}
	require.NoError(t, r.Create(ctx, c))
	assert.ErrorIs(t, r.Create(ctx, &entity.Client{Code: "C01", Name: "Otro"}), domain.ErrDuplicate)

	c.Code = "C99"
	c.Name = "Acme SA"
	require.NoError(t, r.Update(ctx, c))
	got, _ := r.GetByID(ctx, c.ID)
	assert.Equal(t, "C01", got.Code)
	assert.Equal(t, "Acme SA", got.Name)
}
