package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea de un borrador. Si Price va vacío se toma el precio de catálogo.
type LineItemRequest struct {
	ServiceCode string           `json:"service_code"`
	Month       string           `json:"month"` // YYYY-MM
	Quantity    int              `json:"quantity"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Discount    decimal.Decimal  `json:"discount"`
}

// CreateDocumentRequest body para POST /api/documents.
// Type acepta "Factura", "Recibo", "Nota de Crédito" o el prefijo FC/RC/NC.
type CreateDocumentRequest struct {
	Type             string            `json:"type"`
	ClientID         string            `json:"client_id"`
	IssueDate        string            `json:"issue_date,omitempty"`   // YYYY-MM-DD; vacío = hoy
	PaymentDate      string            `json:"payment_date,omitempty"` // obligatorio en recibos
	RelatedInvoiceID string            `json:"related_invoice_id,omitempty"`
	Items            []LineItemRequest `json:"items"`
}

// LineItemResponse línea en respuestas.
type LineItemResponse struct {
	ServiceCode string          `json:"service_code"`
	ServiceName string          `json:"service_name"`
	Month       string          `json:"month"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// DocumentResponse comprobante en respuestas. Los montos conservan el signo guardado.
type DocumentResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	Type         string             `json:"type"`
	ClientID     string             `json:"client_id"`
	ClientCode   string             `json:"client_code,omitempty"`
	ClientName   string             `json:"client_name"`
	IssueDate    string             `json:"issue_date"`
	EmissionTime string             `json:"emission_time"`
	DueDate      string             `json:"due_date"`
	PaymentDate  string             `json:"payment_date,omitempty"`
	Month        string             `json:"month"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Discounts    decimal.Decimal    `json:"discounts"`
	Total        decimal.Decimal    `json:"total"`
	Items        []LineItemResponse `json:"items"`
	Related      *DocumentRef       `json:"related_invoice,omitempty"`
	// Status sólo en facturas: open | cancelled | paid.
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentListFilter query de GET /api/documents.
type DocumentListFilter struct {
	Client string `query:"client"`
	Type   string `query:"type"`
	Month  string `query:"month"`
}

// NextNumberResponse vista previa del próximo número.
type NextNumberResponse struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

// CatalogEntry servicio del catálogo.
type CatalogEntry struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
