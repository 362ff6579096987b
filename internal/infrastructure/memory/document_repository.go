package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/billing"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo historial en memoria con las mismas restricciones que el esquema SQL.
type DocumentRepo struct {
	s *Store
}

func NewDocumentRepository(s *Store) *DocumentRepo {
	return &DocumentRepo{s: s}
}

func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, d := range r.s.documents {
		if d.Number == doc.Number {
			return fmt.Errorf("número %s: %w", doc.Number, domain.ErrNumberingConflict)
		}
	}
	if doc.Related != nil {
		var inv *entity.Document
		for _, d := range r.s.documents {
			if d.ID == doc.Related.ID {
				inv = d
			}
			if d.RelatedID() == doc.Related.ID {
				return billing.ConflictFor(&entity.Document{ID: doc.Related.ID, Number: doc.Related.Number}, d)
			}
		}
		if inv == nil {
			return domain.NewValidationError("related_invoice_id", "la factura relacionada no existe")
		}
	}
	cp := copyDocument(doc)
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.s.documents = append(r.s.documents, cp)
	prefix := cp.Type.Prefix()
	if n := billing.SequenceOf(cp.Number, prefix); n > r.s.sequences[prefix] {
		r.s.sequences[prefix] = n
	}
	return nil
}

// LastIssued la marca no baja al borrar.
func (r *DocumentRepo) LastIssued(_ context.Context, prefix string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sequences[prefix], nil
}

// List en orden de inserción.
func (r *DocumentRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Document, 0, len(r.s.documents))
	for _, d := range r.s.documents {
		if matches(d, f) {
			out = append(out, copyDocument(d))
		}
	}
	return out, nil
}

func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.documents {
		if d.ID == id {
			return copyDocument(d), nil
		}
	}
	return nil, nil
}

func (r *DocumentRepo) ListReferencing(_ context.Context, invoiceID string) ([]*entity.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Document
	for _, d := range r.s.documents {
		if d.RelatedID() == invoiceID {
			out = append(out, copyDocument(d))
		}
	}
	return out, nil
}

// Delete respeta la misma restricción que la FK del esquema SQL.
func (r *DocumentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	idx := -1
	for i, d := range r.s.documents {
		if d.ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	for _, d := range r.s.documents {
		if d.RelatedID() == id {
			return fmt.Errorf("delete document: %w", billing.ConflictFor(r.s.documents[idx], d))
		}
	}
	r.s.documents = append(r.s.documents[:idx], r.s.documents[idx+1:]...)
	return nil
}

func matches(d *entity.Document, f repository.DocumentFilter) bool {
	if f.Client != "" && !strings.Contains(strings.ToLower(d.ClientName), strings.ToLower(f.Client)) {
		return false
	}
	if f.Type != "" && d.Type != f.Type {
		return false
	}
	if f.Month != "" && !strings.HasPrefix(d.Month, f.Month) {
		return false
	}
	return true
}
