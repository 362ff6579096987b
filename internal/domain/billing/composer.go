package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

// DueDays días entre emisión y vencimiento.
const DueDays = 7

// Draft borrador de comprobante. Variantes: InvoiceDraft, CreditNoteDraft, ReceiptDraft.
type Draft interface {
	Type() entity.DocumentType
	common() DraftBase
}

// DraftBase campos comunes a los tres tipos.
type DraftBase struct {
	Client    *entity.Client
	Items     []entity.LineItem
	IssueDate *time.Time // nil = hoy
}

// InvoiceDraft borrador de factura.
type InvoiceDraft struct {
	DraftBase
}

// CreditNoteDraft borrador de nota de crédito; la factura relacionada es obligatoria.
type CreditNoteDraft struct {
	DraftBase
	RelatedInvoiceID string
}

// ReceiptDraft borrador de recibo; la factura relacionada es opcional.
type ReceiptDraft struct {
	DraftBase
	RelatedInvoiceID string
	PaymentDate      *time.Time
}

func (InvoiceDraft) Type() entity.DocumentType    { return entity.TypeInvoice }
func (CreditNoteDraft) Type() entity.DocumentType { return entity.TypeCreditNote }
func (ReceiptDraft) Type() entity.DocumentType    { return entity.TypeReceipt }

func (d InvoiceDraft) common() DraftBase    { return d.DraftBase }
func (d CreditNoteDraft) common() DraftBase { return d.DraftBase }
func (d ReceiptDraft) common() DraftBase    { return d.DraftBase }

// Composer valida, numera y totaliza borradores. Reloj e ids inyectables para tests.
type Composer struct {
	Now   func() time.Time
	NewID func() string
}

// NewComposer compositor con reloj real y uuid v4.
func NewComposer() *Composer {
	return &Composer{Now: time.Now, NewID: uuid.NewString}
}

// Compose atajo con el compositor por defecto.
func Compose(draft Draft, history []*entity.Document) (*entity.Document, error) {
	return NewComposer().Compose(draft, history)
}

// Compose devuelve el comprobante listo para persistir o el primer error de validación.
// Nunca modifica history.
func (c *Composer) Compose(draft Draft, history []*entity.Document) (*entity.Document, error) {
	return c.ComposeAfter(draft, history, 0)
}

// ComposeAfter como Compose; lastIssued es el mayor número ya emitido en la serie del borrador.
func (c *Composer) ComposeAfter(draft Draft, history []*entity.Document, lastIssued int) (*entity.Document, error) {
	if draft == nil {
		return nil, domain.NewValidationError("type", "tipo de comprobante requerido")
	}
	base := draft.common()

	if base.Client.IsPlaceholder() {
		return nil, domain.NewValidationError("client", "seleccione un cliente")
	}
	if err := ValidateItems(base.Items); err != nil {
		return nil, err
	}

	resolver := NewResolver(history)
	var related *entity.Document
	var paymentDate *time.Time

	switch d := draft.(type) {
	case CreditNoteDraft:
		if strings.TrimSpace(d.RelatedInvoiceID) == "" {
			return nil, domain.NewValidationError("related_invoice_id", "la nota de crédito requiere una factura relacionada")
		}
		inv, err := resolver.checkOpen(d.RelatedInvoiceID, base.Client.ID)
		if err != nil {
			return nil, err
		}
		related = inv
	case ReceiptDraft:
		if d.PaymentDate == nil || d.PaymentDate.IsZero() {
			return nil, domain.NewValidationError("payment_date", "el recibo requiere fecha de pago")
		}
		pd := *d.PaymentDate
		paymentDate = &pd
		if strings.TrimSpace(d.RelatedInvoiceID) != "" {
			inv, err := resolver.checkOpen(d.RelatedInvoiceID, base.Client.ID)
			if err != nil {
				return nil, err
			}
			related = inv
		}
	case InvoiceDraft:
	default:
		return nil, domain.NewValidationError("type", fmt.Sprintf("tipo no soportado: %T", draft))
	}

	items := CopyItems(base.Items)
	totals := CalculateTotals(items)
	if draft.Type() == entity.TypeReceipt && related != nil {
		totals = totals.Negate()
	}

	now := c.Now()
	issue := dateOnly(now)
	if base.IssueDate != nil && !base.IssueDate.IsZero() {
		issue = dateOnly(*base.IssueDate)
	}

	doc := &entity.Document{
		ID:           c.NewID(),
		Number:       NextNumberAfter(draft.Type(), history, lastIssued),
		Type:         draft.Type(),
		ClientID:     base.Client.ID,
		ClientCode:   base.Client.Code,
		ClientName:   base.Client.Name,
		IssueDate:    issue,
		EmissionTime: now.Format("15:04:05"),
		DueDate:      issue.AddDate(0, 0, DueDays),
		PaymentDate:  paymentDate,
		Month:        items[0].Month,
		Subtotal:     totals.Subtotal,
		Discounts:    totals.Discounts,
		Total:        totals.Total,
		Items:        items,
		CreatedAt:    now,
	}
	if related != nil {
		doc.Related = &entity.RelatedInvoice{ID: related.ID, Number: related.Number}
	}
	return doc, nil
}

// ValidateItems exige al menos una línea y que cada una tenga mes, código de catálogo,
// cantidad positiva y descuento entre 0 y el precio.
func ValidateItems(items []entity.LineItem) error {
	if len(items) == 0 {
		return domain.NewValidationError("items", "agregue al menos un servicio")
	}
	for i, it := range items {
		if strings.TrimSpace(it.Month) == "" {
			return domain.NewValidationError(fmt.Sprintf("items[%d].month", i), "el mes es obligatorio")
		}
	}
	for i, it := range items {
		field := fmt.Sprintf("items[%d]", i)
		if !ValidMonth(it.Month) {
			return domain.NewValidationError(field+".month", "formato de mes inválido, se espera AAAA-MM")
		}
		if _, err := PriceOf(it.ServiceCode); err != nil {
			return domain.NewValidationError(field+".service_code", err.Error())
		}
		if it.Quantity < 1 {
			return domain.NewValidationError(field+".quantity", "la cantidad debe ser al menos 1")
		}
		if it.Price.IsNegative() {
			return domain.NewValidationError(field+".price", "el precio no puede ser negativo")
		}
		if it.Discount.IsNegative() {
			return domain.NewValidationError(field+".discount", "el descuento no puede ser negativo")
		}
		if it.Discount.GreaterThan(it.Price) {
			return domain.NewValidationError(field+".discount", "el descuento no puede superar el precio")
		}
	}
	return nil
}

// ValidMonth AAAA-MM con mes 01..12.
func ValidMonth(m string) bool {
	if len(m) != 7 {
		return false
	}
	_, err := time.Parse("2006-01", m)
	return err == nil
}

// CopyItems copia profunda de las líneas; completa el nombre desde el catálogo si falta.
func CopyItems(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, len(items))
	for i, it := range items {
		out[i] = it
		if out[i].ServiceName == "" {
			if s, err := PriceOf(it.ServiceCode); err == nil {
				out[i].ServiceName = s.Name
			}
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
