package billing

import (
	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

// InvoiceState estado de una factura. Cancelled y Paid son terminales y excluyentes.
type InvoiceState string

const (
	StateOpen      InvoiceState = "open"
	StateCancelled InvoiceState = "cancelled"
	StatePaid      InvoiceState = "paid"
)

// Resolver índice de relaciones construido una vez por instantánea del historial.
// No se cachea entre llamadas: cada operación construye el suyo.
type Resolver struct {
	invoices    map[string]*entity.Document
	order       []*entity.Document
	cancelledBy map[string]*entity.Document // factura -> nota de crédito
	paidBy      map[string]*entity.Document // factura -> recibo
}

// NewResolver indexa el historial.
func NewResolver(history []*entity.Document) *Resolver {
	r := &Resolver{
		invoices:    make(map[string]*entity.Document),
		cancelledBy: make(map[string]*entity.Document),
		paidBy:      make(map[string]*entity.Document),
	}
	for _, d := range history {
		if d == nil {
			continue
		}
		switch d.Type {
		case entity.TypeInvoice:
			r.invoices[d.ID] = d
			r.order = append(r.order, d)
		case entity.TypeCreditNote:
			if id := d.RelatedID(); id != "" {
				r.cancelledBy[id] = d
			}
		case entity.TypeReceipt:
			if id := d.RelatedID(); id != "" {
				r.paidBy[id] = d
			}
		}
	}
	return r
}

// OpenForCreditNote facturas del cliente sin nota de crédito ni recibo.
func (r *Resolver) OpenForCreditNote(clientID string) []*entity.Document {
	return r.open(clientID)
}

// OpenForReceipt facturas del cliente sin recibo ni nota de crédito.
func (r *Resolver) OpenForReceipt(clientID string) []*entity.Document {
	return r.open(clientID)
}

// open resta ambos conjuntos del índice; las dos vistas comparten este único camino.
func (r *Resolver) open(clientID string) []*entity.Document {
	out := make([]*entity.Document, 0)
	for _, inv := range r.order {
		if inv.ClientID != clientID {
			continue
		}
		if r.IsCancelled(inv.ID) || r.IsPaid(inv.ID) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// IsCancelled O(1).
func (r *Resolver) IsCancelled(invoiceID string) bool {
	_, ok := r.cancelledBy[invoiceID]
	return ok
}

// IsPaid O(1).
func (r *Resolver) IsPaid(invoiceID string) bool {
	_, ok := r.paidBy[invoiceID]
	return ok
}

// Status estado de la factura según el índice.
func (r *Resolver) Status(invoiceID string) InvoiceState {
	switch {
	case r.IsCancelled(invoiceID):
		return StateCancelled
	case r.IsPaid(invoiceID):
		return StatePaid
	}
	return StateOpen
}

// Invoice busca una factura del historial por id.
func (r *Resolver) Invoice(id string) (*entity.Document, bool) {
	inv, ok := r.invoices[id]
	return inv, ok
}

// BlockerOf devuelve el comprobante que referencia a la factura, si existe.
func (r *Resolver) BlockerOf(invoiceID string) *entity.Document {
	if d, ok := r.cancelledBy[invoiceID]; ok {
		return d
	}
	if d, ok := r.paidBy[invoiceID]; ok {
		return d
	}
	return nil
}

// Referencing lista los comprobantes que apuntan a la factura.
func (r *Resolver) Referencing(invoiceID string) []*entity.Document {
	var out []*entity.Document
	if d, ok := r.cancelledBy[invoiceID]; ok {
		out = append(out, d)
	}
	if d, ok := r.paidBy[invoiceID]; ok {
		out = append(out, d)
	}
	return out
}

// checkOpen valida que la factura exista, sea del cliente y siga abierta.
func (r *Resolver) checkOpen(invoiceID, clientID string) (*entity.Document, error) {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return nil, domain.NewValidationError("related_invoice_id", "la factura relacionada no existe")
	}
	if inv.ClientID != clientID {
		return nil, domain.NewValidationError("related_invoice_id", "la factura relacionada pertenece a otro cliente")
	}
	if b := r.BlockerOf(invoiceID); b != nil {
		return nil, ConflictFor(inv, b)
	}
	return inv, nil
}

// ConflictFor construye el error de conflicto con el comprobante que bloquea.
func ConflictFor(invoice, blocker *entity.Document) *domain.RelationshipConflictError {
	return &domain.RelationshipConflictError{
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.Number,
		BlockedBy: domain.DocumentRef{
			ID:     blocker.ID,
			Number: blocker.Number,
			Type:   string(blocker.Type),
		},
	}
}
