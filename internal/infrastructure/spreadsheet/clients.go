package spreadsheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jlvilasoler/hashrate-app/internal/application/dto"
)

// Codificaciones aceptadas para CSV.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
	EncodingCP1252 = "windows-1252"
)

// ErrUnsupportedFormat la extensión no es .xlsx ni .csv.
var ErrUnsupportedFormat = errors.New("formato no soportado: use .xlsx o .csv")

// headerAliases encabezados reconocidos (sin acentos, en minúsculas) por campo.
var headerAliases = map[string]string{
	"code": "code", "codigo": "code", "cod": "code",
	"name": "name", "nombre": "name", "cliente": "name",
	"phone": "phone", "telefono": "phone", "tel": "phone",
	"email": "email", "correo": "email", "mail": "email",
	"address": "address", "direccion": "address",
	"city": "city", "ciudad": "city",
	"name2": "name2", "nombre2": "name2", "cotitular": "name2",
	"phone2": "phone2", "telefono2": "phone2",
	"email2": "email2", "correo2": "email2",
	"address2": "address2", "direccion2": "address2",
	"city2": "city2", "ciudad2": "city2",
}

// ReadClients lee el padrón según la extensión de filename. encoding sólo aplica a CSV.
// La primera fila es la cabecera. Devuelve una entrada por fila de datos, vacías incluidas,
// para que el índice i corresponda a la fila i+2 de la planilla.
func ReadClients(r io.Reader, filename, encoding string) ([]dto.ClientRequest, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r, encoding)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return mapRows(rows)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir: %w", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer filas: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader, encoding string) ([][]string, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingUTF8, "utf8":
	case EncodingLatin1, "iso-8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case EncodingCP1252, "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("csv: codificación desconocida %q", encoding)
	}
	br := bufio.NewReader(r)
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = sniffDelimiter(br)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return rows, nil
}

// sniffDelimiter Excel en configuración regional es-* exporta separando con punto y coma.
func sniffDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(4096)
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		return ';'
	}
	return ','
}

func mapRows(rows [][]string) ([]dto.ClientRequest, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	idx := map[string]int{}
	for i, h := range rows[0] {
		if field, ok := headerAliases[normalizeHeader(h)]; ok {
			idx[field] = i
		}
	}
	if _, ok := idx["code"]; !ok {
		return nil, errors.New("falta la columna código")
	}
	if _, ok := idx["name"]; !ok {
		return nil, errors.New("falta la columna nombre")
	}

	out := make([]dto.ClientRequest, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(field string) string {
			i, ok := idx[field]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		out = append(out, dto.ClientRequest{
			Code: get("code"), Name: get("name"),
			Phone: get("phone"), Email: get("email"), Address: get("address"), City: get("city"),
			Name2: get("name2"), Phone2: get("phone2"), Email2: get("email2"), Address2: get("address2"), City2: get("city2"),
		})
	}
	return out, nil
}

func normalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, h)
	if err != nil {
		s = h
	}
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	return strings.NewReplacer(" ", "", "_", "", ".", "").Replace(s)
}
