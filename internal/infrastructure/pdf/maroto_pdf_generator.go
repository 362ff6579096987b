// Package pdf implementa la representación gráfica de los comprobantes HRS.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  EMISOR: Razón social + dirección │ TÍTULO + N° + TOTAL      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Fechas: emisión / vencimiento / pago                        │
//	│  CLIENTE (+ cotitular)                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Período | Precio | Cant. | Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuentos / TOTAL                      │
//	│  Referencia a la factura (NC y RC)                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/pkg/config"
	"github.com/jlvilasoler/hashrate-app/pkg/money"
)

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 166, Blue: 82}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var monthAbbr = [...]string{"ENE", "FEB", "MAR", "ABR", "MAY", "JUN", "JUL", "AGO", "SEP", "OCT", "NOV", "DIC"}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer config.IssuerConfig
}

// NewMarotoPDFGenerator construye el generador con los datos del emisor.
func NewMarotoPDFGenerator(issuer config.IssuerConfig) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer}
}

// GenerateDocumentPDF genera el PDF y devuelve sus bytes.
// Los importes se imprimen en valor absoluto: la nota de crédito se identifica por su título.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(
	_ context.Context,
	doc *entity.Document,
	client *entity.Client,
) ([]byte, error) {
	cfg := marotoconfig.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(Title(doc.Type)+" "+doc.Number, true).
		WithAuthor(g.issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(datesRow(doc))
	m.AddRows(clientRows(doc, client)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(doc.Items)...)

	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))
	if doc.Related != nil {
		m.AddRows(relatedRow(doc))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento %s: %w", doc.Number, err)
	}
	return out.GetBytes(), nil
}

// Title leyenda impresa según el tipo de comprobante.
func Title(t entity.DocumentType) string {
	switch t {
	case entity.TypeReceipt:
		return "RECIBO"
	case entity.TypeCreditNote:
		return "NOTA DE CRÉDITO"
	default:
		return "FACTURA CREDITO"
	}
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y título + número + total (der).
func (g *MarotoPDFGenerator) headerRow(doc *entity.Document) core.Row {
	is := g.issuer
	return row.New(30).Add(
		col.New(7).Add(
			text.New(is.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(is.Address, props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New(is.City, props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(nonEmpty(is.Phone, "-"), props.Text{Size: 8, Top: 16, Color: colorGray}),
			text.New(nonEmpty(is.Email, "-"), props.Text{Size: 8, Top: 20, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(Title(doc.Type)+" - "+doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("VIA CLIENTE", props.Text{Size: 8, Align: align.Right, Top: 8}),
			text.New(longDate(doc.IssueDate), props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
			text.New("TOTAL "+money.FormatUSD(doc.Total.Abs()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 17, Color: colorPrimary,
			}),
			text.New("RUC EMISOR: "+nonEmpty(is.TaxID, "-"), props.Text{Size: 8, Align: align.Right, Top: 23}),
		),
	)
}

// datesRow: emisión, vencimiento y, en recibos, fecha de pago.
func datesRow(doc *entity.Document) core.Row {
	cols := []core.Col{
		col.New(4).Add(text.New("FECHA DE EMISIÓN: "+shortDate(doc.IssueDate), props.Text{Size: 8, Top: 2})),
		col.New(4).Add(text.New("FECHA DE VENCIMIENTO: "+shortDate(doc.DueDate), props.Text{Size: 8, Top: 2})),
	}
	if doc.PaymentDate != nil {
		cols = append(cols, col.New(4).Add(text.New("FECHA DE PAGO: "+shortDate(*doc.PaymentDate), props.Text{Size: 8, Top: 2})))
	} else {
		cols = append(cols, col.New(4))
	}
	return row.New(8).Add(cols...)
}

// clientRows: titular y, si existe, cotitular. Sin cliente en el padrón se usan los datos del comprobante.
func clientRows(doc *entity.Document, client *entity.Client) []core.Row {
	name := doc.ClientName
	var phone, email, address, city string
	if client != nil {
		name = nonEmpty(client.Name, name)
		phone, email, address, city = client.Phone, client.Email, client.Address, client.City
	}
	rows := []core.Row{holderRow("CLIENTE: "+name, phone, email, address, city)}
	if client != nil && client.Name2 != "" {
		rows = append(rows, holderRow("COTITULAR: "+client.Name2, client.Phone2, client.Email2, client.Address2, client.City2))
	}
	return rows
}

func holderRow(title, phone, email, address, city string) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s", nonEmpty(phone, "-"), nonEmpty(email, "-")),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("%s   %s", nonEmpty(address, "-"), nonEmpty(city, "")),
				props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("DESCRIPCION", 5, align.Left),
		h("PERÍODO", 2, align.Center),
		h("PRECIO", 2, align.Right),
		h("CANT.", 1, align.Center),
		h("TOTAL", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea; el descuento va en una fila propia.
func tableDetailRows(items []entity.LineItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		qty := strconv.Itoa(it.Quantity)
		gross := it.Price.Abs().Mul(decimalInt(it.Quantity))
		result = append(result, row.New(7).Add(
			cell(it.ServiceName, 5, align.Left),
			cell(MonthRange(it.Month), 2, align.Center),
			cell(money.FormatUSD(it.Price.Abs()), 2, align.Right),
			cell(qty, 1, align.Center),
			cell(money.FormatUSD(gross), 2, align.Right),
		))
		if it.Discount.IsZero() {
			continue
		}
		result = append(result, row.New(7).Add(
			cell("Descuento "+it.ServiceCode, 5, align.Left),
			cell(MonthRange(it.Month), 2, align.Center),
			cell("- "+money.FormatUSD(it.Discount.Abs()), 2, align.Right),
			cell(qty, 1, align.Center),
			cell("- "+money.FormatUSD(it.Discount.Abs().Mul(decimalInt(it.Quantity))), 2, align.Right),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *entity.Document) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 10,
		})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			text.New("Descuentos:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10}),
		),
		col.New(3).Add(
			text.New(money.FormatUSD(doc.Subtotal.Abs()), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(money.FormatUSD(doc.Discounts.Abs()), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			grand(money.FormatUSD(doc.Total.Abs())),
		),
	)
}

// relatedRow: factura a la que anula o cancela el comprobante.
func relatedRow(doc *entity.Document) core.Row {
	verb := "Anula la factura"
	if doc.Type == entity.TypeReceipt {
		verb = "Cancela la factura"
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(verb+" "+doc.Related.Number, props.Text{Size: 8, Top: 3, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// MonthRange convierte "2024-02" en "01/02-29/02". Otro formato se devuelve tal cual.
func MonthRange(ym string) string {
	t, err := time.Parse("2006-01", ym)
	if err != nil {
		return ym
	}
	last := t.AddDate(0, 1, -1).Day()
	return fmt.Sprintf("01/%02d-%02d/%02d", int(t.Month()), last, int(t.Month()))
}

func decimalInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

func shortDate(t time.Time) string { return t.Format("02/01/06") }

// longDate "ENE 5, 2024".
func longDate(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", monthAbbr[t.Month()-1], t.Day(), t.Year())
}
