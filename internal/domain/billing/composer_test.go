package billing_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/billing"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

func base(c *entity.Client, items ...entity.LineItem) billing.DraftBase {
	return billing.DraftBase{Client: c, Items: items}
}

func datePtr(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestCompose_Factura(t *testing.T) {
	c := testComposer()
	doc, err := c.Compose(billing.InvoiceDraft{DraftBase: base(clientA(),
		item("A", "2024-03", 2, 100, 10),
		item("B", "2024-04", 1, 250, 0),
	)}, nil)
	require.NoError(t, err)

	assert.Equal(t, "FC-1001", doc.Number)
	assert.Equal(t, entity.TypeInvoice, doc.Type)
	assert.Equal(t, "cli-a", doc.ClientID)
	assert.Equal(t, "Cliente A", doc.ClientName)
	assert.Equal(t, "2024-03", doc.Month, "el mes sale del primer ítem")
	assert.Equal(t, "450", doc.Subtotal.String())
	assert.Equal(t, "20", doc.Discounts.String())
	assert.Equal(t, "430", doc.Total.String())
	assert.Equal(t, "14:30:05", doc.EmissionTime)
	assert.Equal(t, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), doc.IssueDate)
	assert.Equal(t, time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC), doc.DueDate)
	assert.Nil(t, doc.Related)
	assert.Nil(t, doc.PaymentDate)
	assert.Equal(t, "Bitmain Antminer L7 mhs", doc.Items[0].ServiceName)
}

func TestCompose_Validaciones(t *testing.T) {
	a := clientA()
	cases := []struct {
		name  string
		draft billing.Draft
		field string
	}{
		{"sin cliente", billing.InvoiceDraft{DraftBase: base(nil, item("A", "2024-01", 1, 100, 0))}, "client"},
		{"cliente placeholder", billing.InvoiceDraft{DraftBase: base(&entity.Client{ID: "x", Code: entity.PlaceholderClientCode, Name: "Indicar"}, item("A", "2024-01", 1, 100, 0))}, "client"},
		{"sin ítems", billing.InvoiceDraft{DraftBase: base(a)}, "items"},
		{"ítem sin mes", billing.InvoiceDraft{DraftBase: base(a, item("A", "2024-01", 1, 100, 0), item("A", "", 1, 100, 0))}, "items[1].month"},
		{"mes inválido", billing.InvoiceDraft{DraftBase: base(a, item("A", "2024-13", 1, 100, 0))}, "items[0].month"},
		{"código desconocido", billing.InvoiceDraft{DraftBase: base(a, item("Z", "2024-01", 1, 100, 0))}, "items[0].service_code"},
		{"cantidad cero", billing.InvoiceDraft{DraftBase: base(a, item("A", "2024-01", 0, 100, 0))}, "items[0].quantity"},
		{"precio negativo", billing.InvoiceDraft{DraftBase: base(a, item("A", "2024-01", 1, -1, 0))}, "items[0].price"},
		{"descuento mayor al precio", billing.InvoiceDraft{DraftBase: base(a, item("A", "2024-01", 1, 100, 101))}, "items[0].discount"},
		{"nota sin factura", billing.CreditNoteDraft{DraftBase: base(a, item("A", "2024-01", 1, 100, 0))}, "related_invoice_id"},
		{"recibo sin fecha de pago", billing.ReceiptDraft{DraftBase: base(a, item("A", "2024-01", 1, 100, 0))}, "payment_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testComposer().Compose(tc.draft, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestCompose_ClienteAntesQueItems(t *testing.T) {
	_, err := testComposer().Compose(billing.InvoiceDraft{DraftBase: base(nil)}, nil)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "client", ve.Field, "la primera falla gana")
}

func TestCompose_NotaDeCreditoContraFacturaAbierta(t *testing.T) {
	a := clientA()
	fc := invoice("fc1", "FC-1001", a, 100)
	history := []*entity.Document{fc}

	nc, err := testComposer().Compose(billing.CreditNoteDraft{
		DraftBase:        base(a, billing.CopyItems(fc.Items)...),
		RelatedInvoiceID: fc.ID,
	}, history)
	require.NoError(t, err)
	assert.Equal(t, "NC-1001", nc.Number)
	require.NotNil(t, nc.Related)
	assert.Equal(t, "fc1", nc.Related.ID)
	assert.Equal(t, "FC-1001", nc.Related.Number)
	assert.Equal(t, "100", nc.Total.String(), "la nota de crédito guarda magnitudes positivas")

	history = append(history, nc)
	r := billing.NewResolver(history)
	assert.Empty(t, r.OpenForCreditNote(a.ID))
	assert.Empty(t, r.OpenForReceipt(a.ID))

	_, err = testComposer().Compose(billing.CreditNoteDraft{
		DraftBase:        base(a, item("A", "2024-02", 1, 100, 0)),
		RelatedInvoiceID: fc.ID,
	}, history)
	assert.ErrorIs(t, err, domain.ErrRelationshipConflict)
	var rc *domain.RelationshipConflictError
	require.True(t, errors.As(err, &rc))
	assert.Equal(t, "NC-1001", rc.BlockedBy.Number)
	assert.Equal(t, "FC-1001", rc.InvoiceNumber)
}

func TestCompose_EscenarioReciboVinculadoLuegoNotaFalla(t *testing.T) {
	a := clientA()
	fc := invoice("fc1", "FC-1001", a, 100)
	history := []*entity.Document{fc}

	rc, err := testComposer().Compose(billing.ReceiptDraft{
		DraftBase:        base(a, billing.CopyItems(fc.Items)...),
		RelatedInvoiceID: fc.ID,
		PaymentDate:      datePtr("2024-03-01"),
	}, history)
	require.NoError(t, err)
	assert.Equal(t, "RC-1001", rc.Number)
	assert.Equal(t, "-100", rc.Total.String())
	assert.Equal(t, "-100", rc.Subtotal.String())
	require.NotNil(t, rc.Related)
	assert.Equal(t, fc.ID, rc.Related.ID)
	require.NotNil(t, rc.PaymentDate)
	assert.Equal(t, "2024-03-01", rc.PaymentDate.Format("2006-01-02"))

	history = append(history, rc)
	_, err = testComposer().Compose(billing.CreditNoteDraft{
		DraftBase:        base(a, item("A", "2024-02", 1, 100, 0)),
		RelatedInvoiceID: fc.ID,
	}, history)
	assert.ErrorIs(t, err, domain.ErrRelationshipConflict)
	assert.False(t, errors.Is(err, domain.ErrValidation))
}

func TestCompose_ReciboSinFacturaGuardaPositivos(t *testing.T) {
	rc, err := testComposer().Compose(billing.ReceiptDraft{
		DraftBase:   base(clientA(), item("C", "2024-02", 1, 500, 0)),
		PaymentDate: datePtr("2024-03-01"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "500", rc.Total.String())
	assert.Nil(t, rc.Related)
}

func TestCompose_SegundoReciboSobreFacturaPagadaFalla(t *testing.T) {
	a := clientA()
	fc := invoice("fc1", "FC-1001", a, 100)
	paid := linked("rc1", "RC-1001", entity.TypeReceipt, a, fc)

	_, err := testComposer().Compose(billing.ReceiptDraft{
		DraftBase:        base(a, item("A", "2024-02", 1, 100, 0)),
		RelatedInvoiceID: fc.ID,
		PaymentDate:      datePtr("2024-03-01"),
	}, []*entity.Document{fc, paid})
	assert.ErrorIs(t, err, domain.ErrRelationshipConflict)
}

func TestCompose_FacturaDeOtroClienteEsValidacion(t *testing.T) {
	fc := invoice("fc1", "FC-1001", clientB(), 100)
	_, err := testComposer().Compose(billing.CreditNoteDraft{
		DraftBase:        base(clientA(), item("A", "2024-02", 1, 100, 0)),
		RelatedInvoiceID: fc.ID,
	}, []*entity.Document{fc})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "related_invoice_id", ve.Field)
}

func TestCompose_NoModificaElHistorial(t *testing.T) {
	a := clientA()
	fc := invoice("fc1", "FC-1001", a, 100)
	history := []*entity.Document{fc}
	items := []entity.LineItem{item("A", "2024-02", 1, 100, 0)}

	doc, err := testComposer().Compose(billing.CreditNoteDraft{DraftBase: base(a, items...), RelatedInvoiceID: fc.ID}, history)
	require.NoError(t, err)

	assert.Len(t, history, 1)
	assert.Nil(t, fc.Related)
	doc.Items[0].Quantity = 99
	assert.Equal(t, 1, items[0].Quantity, "las líneas se copian")
}

func TestCompose_FechaDeEmisionExplicita(t *testing.T) {
	d := base(clientA(), item("A", "2024-02", 1, 100, 0))
	d.IssueDate = datePtr("2024-01-31")
	doc, err := testComposer().Compose(billing.InvoiceDraft{DraftBase: d}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-07", doc.DueDate.Format("2006-01-02"))
}

// Secuencias aleatorias de composición: ninguna factura queda a la vez anulada y pagada.
func TestCompose_ExclusionMutuaTrasSecuenciasAleatorias(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	clients := []*entity.Client{clientA(), clientB()}

	for round := 0; round < 50; round++ {
		c := testComposer()
		var history []*entity.Document
		for step := 0; step < 40; step++ {
			cli := clients[rng.Intn(len(clients))]
			items := []entity.LineItem{item("A", "2024-02", 1+rng.Intn(3), 100, 0)}
			var invoices []*entity.Document
			for _, d := range history {
				if d.Type == entity.TypeInvoice && d.ClientID == cli.ID {
					invoices = append(invoices, d)
				}
			}
			target := ""
			if len(invoices) > 0 {
				target = invoices[rng.Intn(len(invoices))].ID
			}

			var draft billing.Draft
			switch rng.Intn(3) {
			case 0:
				draft = billing.InvoiceDraft{DraftBase: base(cli, items...)}
			case 1:
				draft = billing.CreditNoteDraft{DraftBase: base(cli, items...), RelatedInvoiceID: target}
			default:
				draft = billing.ReceiptDraft{DraftBase: base(cli, items...), RelatedInvoiceID: target, PaymentDate: datePtr("2024-03-01")}
			}
			doc, err := c.Compose(draft, history)
			if err != nil {
				continue
			}
			history = append(history, doc)
		}

		r := billing.NewResolver(history)
		for _, d := range history {
			if d.Type == entity.TypeInvoice {
				assert.False(t, r.IsCancelled(d.ID) && r.IsPaid(d.ID), "factura %s anulada y pagada", d.Number)
			}
		}
	}
}
