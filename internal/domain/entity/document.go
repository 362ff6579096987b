package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tipo de comprobante.
type DocumentType string

// Tipos de comprobante soportados.
const (
	TypeInvoice    DocumentType = "Factura"
	TypeReceipt    DocumentType = "Recibo"
	TypeCreditNote DocumentType = "Nota de Crédito"
)

// Prefijos de numeración por tipo.
const (
	PrefixInvoice    = "FC"
	PrefixReceipt    = "RC"
	PrefixCreditNote = "NC"
)

// Prefix devuelve el prefijo de numeración del tipo ("" si el tipo es desconocido).
func (t DocumentType) Prefix() string {
	switch t {
	case TypeInvoice:
		return PrefixInvoice
	case TypeReceipt:
		return PrefixReceipt
	case TypeCreditNote:
		return PrefixCreditNote
	}
	return ""
}

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t DocumentType) Valid() bool { return t.Prefix() != "" }

// ParseDocumentType acepta el nombre ("Factura"), el prefijo ("FC") o un alias en inglés.
func ParseDocumentType(s string) (DocumentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "factura", "fc", "invoice":
		return TypeInvoice, true
	case "recibo", "rc", "receipt":
		return TypeReceipt, true
	case "nota de crédito", "nota de credito", "nc", "credit-note", "credit_note":
		return TypeCreditNote, true
	}
	return "", false
}

// RelatedInvoice factura que un recibo salda o una nota de crédito anula.
type RelatedInvoice struct {
	ID     string
	Number string
}

// Document comprobante emitido. Se crea sólo a través del compositor y nunca se edita.
type Document struct {
	ID           string
	Number       string // FC-1001
	Type         DocumentType
	ClientID     string
	ClientCode   string
	ClientName   string // desnormalizado
	IssueDate    time.Time
	EmissionTime string // HH:MM:SS
	DueDate      time.Time
	PaymentDate  *time.Time // sólo recibos
	Month        string     // mes del primer ítem
	Subtotal     decimal.Decimal
	Discounts    decimal.Decimal
	Total        decimal.Decimal
	Items        []LineItem
	Related      *RelatedInvoice // nil en facturas
	CreatedAt    time.Time
}

// IsInvoice atajo para filtrar facturas.
func (d *Document) IsInvoice() bool { return d.Type == TypeInvoice }

// RelatedID id de la factura relacionada o "".
func (d *Document) RelatedID() string {
	if d.Related == nil {
		return ""
	}
	return d.Related.ID
}
