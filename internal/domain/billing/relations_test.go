package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jlvilasoler/hashrate-app/internal/domain/billing"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

func TestResolver_FacturasSinReferenciaEstanEnAmbasVistas(t *testing.T) {
	a, b := clientA(), clientB()
	fc1 := invoice("fc1", "FC-1001", a, 100)
	fc2 := invoice("fc2", "FC-1002", a, 250)
	fc3 := invoice("fc3", "FC-1003", b, 500)

	r := billing.NewResolver([]*entity.Document{fc1, fc2, fc3})

	assert.Equal(t, []string{"fc1", "fc2"}, ids(r.OpenForCreditNote(a.ID)))
	assert.Equal(t, []string{"fc1", "fc2"}, ids(r.OpenForReceipt(a.ID)))
	assert.Equal(t, []string{"fc3"}, ids(r.OpenForReceipt(b.ID)))
	assert.Equal(t, billing.StateOpen, r.Status("fc1"))
}

func TestResolver_NotaDeCreditoSacaLaFacturaDeAmbasVistas(t *testing.T) {
	a := clientA()
	fc1 := invoice("fc1", "FC-1001", a, 100)
	fc2 := invoice("fc2", "FC-1002", a, 100)
	nc := linked("nc1", "NC-1001", entity.TypeCreditNote, a, fc1)

	r := billing.NewResolver([]*entity.Document{fc1, fc2, nc})

	assert.True(t, r.IsCancelled("fc1"))
	assert.False(t, r.IsPaid("fc1"))
	assert.Equal(t, billing.StateCancelled, r.Status("fc1"))
	assert.Equal(t, []string{"fc2"}, ids(r.OpenForCreditNote(a.ID)))
	assert.Equal(t, []string{"fc2"}, ids(r.OpenForReceipt(a.ID)))
	assert.Equal(t, nc, r.BlockerOf("fc1"))
}

func TestResolver_ReciboSacaLaFacturaDeAmbasVistas(t *testing.T) {
	a := clientA()
	fc1 := invoice("fc1", "FC-1001", a, 100)
	rc := linked("rc1", "RC-1001", entity.TypeReceipt, a, fc1)

	r := billing.NewResolver([]*entity.Document{rc, fc1})

	assert.True(t, r.IsPaid("fc1"))
	assert.Equal(t, billing.StatePaid, r.Status("fc1"))
	assert.Empty(t, r.OpenForCreditNote(a.ID))
	assert.Empty(t, r.OpenForReceipt(a.ID))
	assert.Len(t, r.Referencing("fc1"), 1)
}

func TestResolver_ReciboSinFacturaNoAfectaVistas(t *testing.T) {
	a := clientA()
	fc1 := invoice("fc1", "FC-1001", a, 100)
	rc := &entity.Document{ID: "rc1", Number: "RC-1001", Type: entity.TypeReceipt, ClientID: a.ID}

	r := billing.NewResolver([]*entity.Document{fc1, rc})
	assert.Equal(t, []string{"fc1"}, ids(r.OpenForReceipt(a.ID)))
}

func TestResolver_ClienteSinFacturasDevuelveVacio(t *testing.T) {
	r := billing.NewResolver(nil)
	open := r.OpenForCreditNote("nadie")
	assert.NotNil(t, open)
	assert.Empty(t, open)
}
