package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/billing"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	d.id, d.number, d.type, d.client_id, d.client_code, d.client_name,
	d.issue_date, d.emission_time, d.due_date, d.payment_date, d.month,
	d.subtotal, d.discounts, d.total,
	d.related_invoice_id, d.related_invoice_number, d.created_at`

// Create persiste la cabecera y las líneas del comprobante.
// Llamar dentro de una transacción para que cabecera y líneas sean atómicas.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	var relatedID, relatedNumber *string
	if doc.Related != nil {
		relatedID = &doc.Related.ID
		relatedNumber = &doc.Related.Number
	}
	query := `
		INSERT INTO documents (id, number, type, client_id, client_code, client_name,
			issue_date, emission_time, due_date, payment_date, month,
			subtotal, discounts, total, related_invoice_id, related_invoice_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Number, string(doc.Type), doc.ClientID, doc.ClientCode, doc.ClientName,
		doc.IssueDate, doc.EmissionTime, doc.DueDate, doc.PaymentDate, doc.Month,
		doc.Subtotal, doc.Discounts, doc.Total, relatedID, relatedNumber, doc.CreatedAt,
	)
	if err != nil {
		return r.mapInsertError(doc, err)
	}

	for i, it := range doc.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO document_items (document_id, position, service_code, service_name, month, quantity, price, discount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			doc.ID, i, it.ServiceCode, it.ServiceName, it.Month, it.Quantity, it.Price, it.Discount,
		)
		if err != nil {
			return fmt.Errorf("insert document item: %w", err)
		}
	}

	prefix := doc.Type.Prefix()
	_, err = r.q.Exec(ctx, `
		INSERT INTO document_sequences (prefix, last_number) VALUES ($1, $2)
		ON CONFLICT (prefix) DO UPDATE SET last_number = GREATEST(document_sequences.last_number, EXCLUDED.last_number)`,
		prefix, billing.SequenceOf(doc.Number, prefix),
	)
	if err != nil {
		return fmt.Errorf("update document sequence: %w", err)
	}
	return nil
}

// LastIssued lee la marca de la serie; 0 si no hay fila.
func (r *DocumentRepo) LastIssued(ctx context.Context, prefix string) (int, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT last_number FROM document_sequences WHERE prefix = $1`, prefix).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("last issued %s: %w", prefix, err)
	}
	return int(n), nil
}

// mapInsertError no consulta nada: tras la violación la transacción quedó abortada (25P02).
// Quién bloquea la factura lo resuelve el caso de uso después del rollback.
func (r *DocumentRepo) mapInsertError(doc *entity.Document, err error) error {
	switch {
	case isUniqueViolation(err) && constraintOf(err) == constraintDocumentNumber:
		return fmt.Errorf("número %s: %w", doc.Number, domain.ErrNumberingConflict)
	case isUniqueViolation(err) && constraintOf(err) == constraintDocumentRelated:
		return fmt.Errorf("factura %s: %w", doc.Related.Number, domain.ErrRelationshipConflict)
	case isForeignKeyViolation(err):
		return domain.NewValidationError("related_invoice_id", "la factura relacionada no existe")
	}
	return fmt.Errorf("insert document: %w", err)
}

// List devuelve el historial filtrado, con líneas, ordenado por creación.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	where, args := documentFilterSQL(f)
	query := "SELECT " + documentColumns + " FROM documents d" + where
	query += " ORDER BY d.created_at, d.number"

	docs, err := r.queryDocuments(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if err := r.loadItems(ctx, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetByID devuelve nil, nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	docs, err := r.queryDocuments(ctx, "SELECT "+documentColumns+" FROM documents d WHERE d.id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	if err := r.loadItems(ctx, docs); err != nil {
		return nil, err
	}
	return docs[0], nil
}

// ListReferencing comprobantes que apuntan a la factura.
func (r *DocumentRepo) ListReferencing(ctx context.Context, invoiceID string) ([]*entity.Document, error) {
	docs, err := r.queryDocuments(ctx,
		"SELECT "+documentColumns+" FROM documents d WHERE d.related_invoice_id = $1 ORDER BY d.created_at", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list referencing documents: %w", err)
	}
	return docs, nil
}

// Delete elimina el comprobante; las líneas caen por ON DELETE CASCADE.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete document: %w", domain.ErrRelationshipConflict)
		}
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) queryDocuments(ctx context.Context, query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Document
	for rows.Next() {
		var d entity.Document
		var docType string
		var paymentDate *time.Time
		var relatedID, relatedNumber *string
		if err := rows.Scan(
			&d.ID, &d.Number, &docType, &d.ClientID, &d.ClientCode, &d.ClientName,
			&d.IssueDate, &d.EmissionTime, &d.DueDate, &paymentDate, &d.Month,
			&d.Subtotal, &d.Discounts, &d.Total,
			&relatedID, &relatedNumber, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		d.Type = entity.DocumentType(docType)
		d.PaymentDate = paymentDate
		if relatedID != nil {
			d.Related = &entity.RelatedInvoice{ID: *relatedID, Number: derefStr(relatedNumber)}
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// loadItems carga las líneas de todos los comprobantes en una sola consulta.
func (r *DocumentRepo) loadItems(ctx context.Context, docs []*entity.Document) error {
	if len(docs) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Document, len(docs))
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
		ids = append(ids, d.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT document_id, service_code, service_name, month, quantity, price, discount
		FROM document_items
		WHERE document_id = ANY($1::uuid[])
		ORDER BY document_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var docID string
		var it entity.LineItem
		if err := rows.Scan(&docID, &it.ServiceCode, &it.ServiceName, &it.Month, &it.Quantity, &it.Price, &it.Discount); err != nil {
			return fmt.Errorf("scan document item: %w", err)
		}
		if d, ok := byID[docID]; ok {
			d.Items = append(d.Items, it)
		}
	}
	return rows.Err()
}

// getOne variante de QueryRow que traduce ErrNoRows a nil, nil.
func getOne[T any](row pgx.Row, scan func(pgx.Row) (*T, error)) (*T, error) {
	v, err := scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
