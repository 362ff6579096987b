package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/domain"
	corebilling "github.com/jlvilasoler/hashrate-app/internal/domain/billing"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
	"github.com/jlvilasoler/hashrate-app/pkg/logger"
)

// maxComposeAttempts intentos ante un conflicto de numeración antes de rendirse.
const maxComposeAttempts = 3

// Destinos válidos para GET /api/clients/:id/open-invoices?for=
const (
	PurposeCreditNote = "credit-note"
	PurposeReceipt    = "receipt"
)

// DocumentUseCase emisión, consulta y borrado de comprobantes.
type DocumentUseCase struct {
	txRunner   DocumentTxRunner
	docRepo    repository.DocumentRepository
	clientRepo repository.ClientRepository
	composer   *corebilling.Composer
	log        *logger.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	txRunner DocumentTxRunner,
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	composer *corebilling.Composer,
	log *logger.Logger,
) *DocumentUseCase {
	if composer == nil {
		composer = corebilling.NewComposer()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentUseCase{
		txRunner:   txRunner,
		docRepo:    docRepo,
		clientRepo: clientRepo,
		composer:   composer,
		log:        log.Component("documents"),
	}
}

// Create toma una instantánea del historial, compone el comprobante y lo persiste en la misma
// transacción. Ante domain.ErrNumberingConflict recompone con una instantánea nueva.
func (uc *DocumentUseCase) Create(ctx context.Context, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	docType, ok := entity.ParseDocumentType(in.Type)
	if !ok {
		return nil, domain.NewValidationError("type", "tipo de comprobante inválido")
	}
	issueDate, err := parseOptionalDate("issue_date", in.IssueDate)
	if err != nil {
		return nil, err
	}
	paymentDate, err := parseOptionalDate("payment_date", in.PaymentDate)
	if err != nil {
		return nil, err
	}
	items := buildItems(in.Items)

	var doc *entity.Document
	for attempt := 1; attempt <= maxComposeAttempts; attempt++ {
		err = uc.txRunner.RunDocuments(ctx, func(docRepo repository.DocumentRepository, clientRepo repository.ClientRepository) error {
			client, err := loadClient(ctx, clientRepo, in.ClientID)
			if err != nil {
				return err
			}
			history, err := docRepo.List(ctx, repository.DocumentFilter{})
			if err != nil {
				return err
			}
			lastIssued, err := docRepo.LastIssued(ctx, docType.Prefix())
			if err != nil {
				return err
			}
			base := corebilling.DraftBase{Client: client, Items: items, IssueDate: issueDate}
			composed, err := uc.composer.ComposeAfter(newDraft(docType, base, in.RelatedInvoiceID, paymentDate), history, lastIssued)
			if err != nil {
				return err
			}
			if err := docRepo.Create(ctx, composed); err != nil {
				return err
			}
			doc = composed
			return nil
		})
		if err == nil || !errors.Is(err, domain.ErrNumberingConflict) {
			break
		}
		uc.log.Warn().Err(err).Int("attempt", attempt).Str("type", string(docType)).Msg("conflicto de numeración, recomponiendo")
	}
	if err != nil {
		return nil, uc.explainConflict(ctx, in.RelatedInvoiceID, err)
	}

	ev := uc.log.Info().Str("number", doc.Number).Str("type", string(doc.Type)).Str("client", doc.ClientName).Str("total", doc.Total.String())
	if doc.Related != nil {
		ev = ev.Str("related", doc.Related.Number)
	}
	ev.Msg("comprobante emitido")
	return toDocumentResponse(doc), nil
}

// List historial filtrado. Las facturas llevan su estado según el historial completo.
func (uc *DocumentUseCase) List(ctx context.Context, in dto.DocumentListFilter) ([]*dto.DocumentResponse, error) {
	filter, err := ToDocumentFilter(in)
	if err != nil {
		return nil, err
	}

	history, err := uc.docRepo.List(ctx, repository.DocumentFilter{})
	if err != nil {
		return nil, err
	}
	docs := history
	if filter != (repository.DocumentFilter{}) {
		if docs, err = uc.docRepo.List(ctx, filter); err != nil {
			return nil, err
		}
	}

	resolver := corebilling.NewResolver(history)
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		r := toDocumentResponse(d)
		if d.IsInvoice() {
			r.Status = string(resolver.Status(d.ID))
		}
		out = append(out, r)
	}
	return out, nil
}

// Get obtiene un comprobante con su estado si es factura.
func (uc *DocumentUseCase) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.getDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toDocumentResponse(doc)
	if doc.IsInvoice() {
		refs, err := uc.docRepo.ListReferencing(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		out.Status = string(corebilling.NewResolver(append(refs, doc)).Status(doc.ID))
	}
	return out, nil
}

// Delete borra un comprobante. Una factura referenciada por una nota de crédito o un recibo
// no se puede borrar; borrar la NC/RC reabre la factura.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.getDocument(ctx, id)
	if err != nil {
		return err
	}
	if doc.IsInvoice() {
		refs, err := uc.docRepo.ListReferencing(ctx, doc.ID)
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return corebilling.ConflictFor(doc, refs[0])
		}
	}
	if err := uc.docRepo.Delete(ctx, doc.ID); err != nil {
		return uc.explainConflict(ctx, doc.ID, err)
	}
	uc.log.Info().Str("number", doc.Number).Str("type", string(doc.Type)).Msg("comprobante eliminado")
	return nil
}

// NextNumber vista previa del próximo número del tipo. Orientativo.
func (uc *DocumentUseCase) NextNumber(ctx context.Context, typ string) (*dto.NextNumberResponse, error) {
	docType, ok := entity.ParseDocumentType(typ)
	if !ok {
		return nil, domain.NewValidationError("type", "tipo de comprobante inválido")
	}
	history, err := uc.docRepo.List(ctx, repository.DocumentFilter{})
	if err != nil {
		return nil, err
	}
	lastIssued, err := uc.docRepo.LastIssued(ctx, docType.Prefix())
	if err != nil {
		return nil, err
	}
	return &dto.NextNumberResponse{Type: string(docType), Number: corebilling.NextNumberAfter(docType, history, lastIssued)}, nil
}

// OpenInvoices facturas del cliente que admiten una nota de crédito o un recibo.
func (uc *DocumentUseCase) OpenInvoices(ctx context.Context, clientID, purpose string) ([]*dto.DocumentResponse, error) {
	if purpose != PurposeCreditNote && purpose != PurposeReceipt {
		return nil, domain.NewValidationError("for", "use credit-note o receipt")
	}
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	history, err := uc.docRepo.List(ctx, repository.DocumentFilter{})
	if err != nil {
		return nil, err
	}
	resolver := corebilling.NewResolver(history)
	open := resolver.OpenForCreditNote(client.ID)
	if purpose == PurposeReceipt {
		open = resolver.OpenForReceipt(client.ID)
	}
	out := make([]*dto.DocumentResponse, 0, len(open))
	for _, inv := range open {
		r := toDocumentResponse(inv)
		r.Status = string(corebilling.StateOpen)
		out = append(out, r)
	}
	return out, nil
}

// DraftItems copia de las líneas de una factura para precargar una NC o un RC.
func (uc *DocumentUseCase) DraftItems(ctx context.Context, invoiceID string) ([]dto.LineItemResponse, error) {
	doc, err := uc.getDocument(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !doc.IsInvoice() {
		return nil, domain.NewValidationError("id", "sólo se pueden copiar líneas de una factura")
	}
	return toLineItemResponses(corebilling.CopyItems(doc.Items)), nil
}

// Catalog servicios facturables.
func (uc *DocumentUseCase) Catalog() []dto.CatalogEntry {
	entries := corebilling.Catalog()
	out := make([]dto.CatalogEntry, 0, len(entries))
	for _, s := range entries {
		out = append(out, dto.CatalogEntry{Code: s.Code, Name: s.Name, Price: s.Price})
	}
	return out
}

// explainConflict completa un domain.ErrRelationshipConflict del almacén con el comprobante que
// bloquea la factura. Se consulta fuera de la transacción, que ya fue revertida.
func (uc *DocumentUseCase) explainConflict(ctx context.Context, invoiceID string, err error) error {
	var rerr *domain.RelationshipConflictError
	if invoiceID == "" || !errors.Is(err, domain.ErrRelationshipConflict) || errors.As(err, &rerr) {
		return err
	}
	inv, gerr := uc.docRepo.GetByID(ctx, invoiceID)
	if gerr != nil || inv == nil {
		return err
	}
	refs, lerr := uc.docRepo.ListReferencing(ctx, invoiceID)
	if lerr != nil || len(refs) == 0 {
		return err
	}
	return corebilling.ConflictFor(inv, refs[0])
}

func (uc *DocumentUseCase) getDocument(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// loadClient devuelve nil sin error si el id está vacío o no existe: el compositor lo rechaza.
func loadClient(ctx context.Context, repo repository.ClientRepository, id string) (*entity.Client, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	return c, nil
}

func newDraft(t entity.DocumentType, base corebilling.DraftBase, relatedID string, paymentDate *time.Time) corebilling.Draft {
	switch t {
	case entity.TypeCreditNote:
		return corebilling.CreditNoteDraft{DraftBase: base, RelatedInvoiceID: relatedID}
	case entity.TypeReceipt:
		return corebilling.ReceiptDraft{DraftBase: base, RelatedInvoiceID: relatedID, PaymentDate: paymentDate}
	}
	return corebilling.InvoiceDraft{DraftBase: base}
}

// buildItems resuelve nombre y, si falta, precio desde el catálogo. Códigos desconocidos pasan
// tal cual para que el compositor los reporte en su orden de validación.
func buildItems(in []dto.LineItemRequest) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		li := entity.LineItem{
			ServiceCode: strings.ToUpper(strings.TrimSpace(it.ServiceCode)),
			Month:       strings.TrimSpace(it.Month),
			Quantity:    it.Quantity,
			Discount:    it.Discount,
		}
		if s, err := corebilling.PriceOf(li.ServiceCode); err == nil {
			li.ServiceName = s.Name
			li.Price = s.Price
		}
		if it.Price != nil {
			li.Price = *it.Price
		}
		out = append(out, li)
	}
	return out
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return nil, domain.NewValidationError(field, "fecha inválida, se espera AAAA-MM-DD")
	}
	return &t, nil
}
