package repository

import (
	"context"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

// DocumentFilter filtros del historial. Campos vacíos no filtran.
type DocumentFilter struct {
	Client string              // subcadena del nombre, sin distinguir mayúsculas
	Type   entity.DocumentType // tipo exacto
	Month  string              // prefijo del mes (YYYY o YYYY-MM)
}

// DocumentRepository define el puerto de persistencia del historial de comprobantes.
type DocumentRepository interface {
	// List devuelve la instantánea del historial ordenada por fecha de creación ascendente.
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, error)
	// Create persiste el comprobante con sus líneas y eleva la marca de la serie.
	// Devuelve domain.ErrNumberingConflict si el número ya existe y un error que envuelve
	// domain.ErrRelationshipConflict si la factura relacionada ya tiene un comprobante.
	Create(ctx context.Context, doc *entity.Document) error
	// LastIssued mayor número emitido alguna vez en la serie prefix (FC, RC, NC), borrados incluidos.
	// 0 si la serie nunca emitió.
	LastIssued(ctx context.Context, prefix string) (int, error)
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// ListReferencing comprobantes (NC/RC) que apuntan a la factura.
	ListReferencing(ctx context.Context, invoiceID string) ([]*entity.Document, error)
	Delete(ctx context.Context, id string) error
}
