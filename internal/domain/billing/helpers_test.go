package billing_test

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jlvilasoler/hashrate-app/internal/domain/billing"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

var fixedNow = time.Date(2024, 2, 20, 14, 30, 5, 0, time.UTC)

func testComposer() *billing.Composer {
	n := 0
	return &billing.Composer{
		Now: func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("doc-%d", n)
		},
	}
}

func clientA() *entity.Client {
	return &entity.Client{ID: "cli-a", Code: "A01", Name: "Cliente A"}
}

func clientB() *entity.Client {
	return &entity.Client{ID: "cli-b", Code: "B01", Name: "Cliente B"}
}

func item(code, month string, qty int, price, discount int64) entity.LineItem {
	return entity.LineItem{
		ServiceCode: code,
		Month:       month,
		Quantity:    qty,
		Price:       decimal.NewFromInt(price),
		Discount:    decimal.NewFromInt(discount),
	}
}

func invoice(id, number string, c *entity.Client, total int64) *entity.Document {
	return &entity.Document{
		ID:         id,
		Number:     number,
		Type:       entity.TypeInvoice,
		ClientID:   c.ID,
		ClientName: c.Name,
		Month:      "2024-02",
		Subtotal:   decimal.NewFromInt(total),
		Discounts:  decimal.Zero,
		Total:      decimal.NewFromInt(total),
		Items:      []entity.LineItem{item("A", "2024-02", 1, total, 0)},
	}
}

func linked(id, number string, t entity.DocumentType, c *entity.Client, inv *entity.Document) *entity.Document {
	return &entity.Document{
		ID:         id,
		Number:     number,
		Type:       t,
		ClientID:   c.ID,
		ClientName: c.Name,
		Related:    &entity.RelatedInvoice{ID: inv.ID, Number: inv.Number},
	}
}

func ids(docs []*entity.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}
