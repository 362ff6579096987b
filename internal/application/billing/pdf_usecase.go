package billing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

// PDFUseCase genera el PDF de un comprobante del historial.
type PDFUseCase struct {
	docRepo    repository.DocumentRepository
	clientRepo repository.ClientRepository
	generator  DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	generator DocumentPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{docRepo: docRepo, clientRepo: clientRepo, generator: generator}
}

// DownloadDocumentPDF devuelve (pdfBytes, filename, nil) o domain.ErrNotFound si no existe.
// Si el cliente ya no está en el padrón se imprimen los datos guardados en el comprobante.
func (uc *PDFUseCase) DownloadDocumentPDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener comprobante: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(ctx, doc.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	pdfBytes, err := uc.generator.GenerateDocumentPDF(ctx, doc, client)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, PDFFilename(doc.Number, doc.ClientName), nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PDFFilename <NUMERO>_<cliente>.pdf con el nombre sin acentos y reducido a caracteres seguros.
func PDFFilename(number, clientName string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, clientName)
	if err != nil {
		plain = clientName
	}
	safe := strings.Trim(unsafeFilenameChars.ReplaceAllString(plain, "_"), "_.")
	if safe == "" {
		safe = "cliente"
	}
	return fmt.Sprintf("%s_%s.pdf", number, safe)
}
