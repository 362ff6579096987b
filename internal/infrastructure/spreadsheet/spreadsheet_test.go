package spreadsheet_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
	"github.com/jlvilasoler/hashrate-app/internal/infrastructure/spreadsheet"
)

func TestExportHistory_CabeceraYFilas(t *testing.T) {
	docs := []*dto.DocumentResponse{
		{Number: "FC-1001", Type: "Factura", ClientName: "José Núñez", IssueDate: "2024-01-05", DueDate: "2024-01-12",
			Month: "2024-01", Subtotal: decimal.NewFromInt(200), Discounts: decimal.Zero, Total: decimal.NewFromInt(200), Status: "cancelled"},
		{Number: "NC-1001", Type: "Nota de Crédito", ClientName: "José Núñez", IssueDate: "2024-01-06", DueDate: "2024-01-13",
			Month: "2024-01", Subtotal: decimal.NewFromInt(-200), Discounts: decimal.Zero, Total: decimal.NewFromInt(-200),
			Related: &dto.DocumentRef{ID: "x", Number: "FC-1001"}},
	}

	out, err := spreadsheet.NewHistoryExporter().ExportHistory(context.Background(), docs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Historial", f.GetSheetName(0))
	rows, err := f.GetRows("Historial")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Número", rows[0][0])
	assert.Equal(t, "FC-1001", rows[1][0])
	assert.Equal(t, "cancelled", rows[1][9])
	assert.Equal(t, "FC-1001", rows[2][10])

	v, err := f.GetCellValue("Historial", "I3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "-200", v)
}

func TestExportHistory_Vacio(t *testing.T) {
	out, err := spreadsheet.NewHistoryExporter().ExportHistory(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestReadClients_CSVLatin1ConPuntoYComa(t *testing.T) {
	raw := "Código;Nombre;Teléfono;Ciudad\nC-01;José Núñez;0981 111;Asunción\n;;;\nC-02;Ana;;\n"
	enc, err := charmap.ISO8859_1.NewEncoder().String(raw)
	require.NoError(t, err)

	got, err := spreadsheet.ReadClients(strings.NewReader(enc), "padron.CSV", spreadsheet.EncodingLatin1)
	require.NoError(t, err)
	require.Len(t, got, 3, "las filas vacías se conservan para no correr la numeración")
	assert.Equal(t, "C-01", got[0].Code)
	assert.Equal(t, "José Núñez", got[0].Name)
	assert.Equal(t, "Asunción", got[0].City)
	assert.Equal(t, dto.ClientRequest{}, got[1])
	assert.Equal(t, "Ana", got[2].Name)
}

func TestReadClients_CSVUTF8ConComaYBOM(t *testing.T) {
	raw := "\ufeffcode,name,email,cotitular\nA1,Hashrate SA,ops@hrs.space,María\n"
	got, err := spreadsheet.ReadClients(strings.NewReader(raw), "clientes.csv", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ops@hrs.space", got[0].Email)
	assert.Equal(t, "María", got[0].Name2)
}

func TestReadClients_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Nombre", "Codigo", "Dirección"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Pedro", "P-9", "Calle 1"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := spreadsheet.ReadClients(buf, "padron.xlsx", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, dto.ClientRequest{Code: "P-9", Name: "Pedro", Address: "Calle 1"}, got[0])
}

func TestReadClients_SinColumnaCodigo(t *testing.T) {
	_, err := spreadsheet.ReadClients(strings.NewReader("nombre\nAna\n"), "x.csv", "")
	assert.Error(t, err)
}

func TestReadClients_FormatoNoSoportado(t *testing.T) {
	_, err := spreadsheet.ReadClients(strings.NewReader(""), "x.ods", "")
	assert.ErrorIs(t, err, spreadsheet.ErrUnsupportedFormat)
}

func TestReadClients_CodificacionDesconocida(t *testing.T) {
	_, err := spreadsheet.ReadClients(strings.NewReader("code,name\n"), "x.csv", "ebcdic")
	assert.Error(t, err)
}
