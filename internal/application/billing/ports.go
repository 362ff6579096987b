package billing

import (
	"context"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

// DocumentTxRunner ejecuta una función dentro de una transacción con los repos del historial.
// La implementación serializa las emisiones concurrentes.
type DocumentTxRunner interface {
	RunDocuments(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		clientRepo repository.ClientRepository,
	) error) error
}

// DocumentPDFGenerator genera la representación gráfica de un comprobante.
// client puede ser nil si el cliente fue borrado; se usan los datos desnormalizados.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document, client *entity.Client) ([]byte, error)
}
