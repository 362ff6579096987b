package billing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

// FirstNumber primer número de cada serie.
const FirstNumber = 1001

// NextNumber calcula el siguiente número de la serie del tipo a partir del historial.
// Es orientativo: la unicidad la garantiza el almacén al persistir.
func NextNumber(docType entity.DocumentType, history []*entity.Document) string {
	return NextNumberAfter(docType, history, 0)
}

// NextNumberAfter como NextNumber, pero nunca por debajo de lastIssued+1: lastIssued es el
// mayor número emitido en la serie, aunque el comprobante se haya borrado después.
func NextNumberAfter(docType entity.DocumentType, history []*entity.Document, lastIssued int) string {
	prefix := docType.Prefix()
	max := lastIssued
	found := lastIssued > 0
	for _, d := range history {
		if d == nil || !strings.HasPrefix(d.Number, prefix) {
			continue
		}
		found = true
		if n := numericSuffix(d.Number, prefix); n > max {
			max = n
		}
	}
	if !found {
		return FormatNumber(prefix, FirstNumber)
	}
	return FormatNumber(prefix, max+1)
}

// FormatNumber forma canónica PREFIJO-N.
func FormatNumber(prefix string, n int) string {
	return fmt.Sprintf("%s-%d", prefix, n)
}

// SequenceOf parte numérica de number en la serie prefix; 0 si no pertenece o no es válida.
func SequenceOf(number, prefix string) int {
	if !strings.HasPrefix(number, prefix) {
		return 0
	}
	return numericSuffix(number, prefix)
}

// numericSuffix acepta "FC-1234" y "FC1234"; cualquier otra cosa vale 0.
func numericSuffix(number, prefix string) int {
	rest := strings.TrimPrefix(number, prefix)
	rest = strings.TrimPrefix(rest, "-")
	if rest == "" {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
