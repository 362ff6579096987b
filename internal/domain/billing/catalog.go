package billing

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrUnknownServiceCode el código no pertenece al catálogo cerrado.
var ErrUnknownServiceCode = errors.New("código de servicio desconocido")

// Service entrada del catálogo.
type Service struct {
	Code  string
	Name  string
	Price decimal.Decimal
}

var catalog = map[string]Service{
	"A": {Code: "A", Name: "Bitmain Antminer L7 mhs", Price: decimal.NewFromInt(100)},
	"B": {Code: "B", Name: "Bitmain Antminer L9 mhs", Price: decimal.NewFromInt(250)},
	"C": {Code: "C", Name: "Bitmain Antminer S21 ths", Price: decimal.NewFromInt(500)},
}

// PriceOf resuelve nombre y precio unitario de un código de servicio.
func PriceOf(code string) (Service, error) {
	s, ok := catalog[code]
	if !ok {
		return Service{}, ErrUnknownServiceCode
	}
	return s, nil
}

// Catalog lista el catálogo ordenado por código.
func Catalog() []Service {
	out := make([]Service, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
