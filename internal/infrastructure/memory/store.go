// Package memory implementa los puertos de repositorio en proceso (STORAGE_DRIVER=memory).
// Pensado para un único operador y para tests: los datos se pierden al reiniciar.
package memory

import (
	"sync"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
)

// Store estado compartido por todos los repos en memoria.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex // serializa RunDocuments
	documents []*entity.Document
	sequences map[string]int // prefijo -> mayor número emitido
	clients   map[string]*entity.Client
	users     map[string]*entity.User
	activity  []*entity.UserActivity
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		sequences: make(map[string]int),
		clients:   make(map[string]*entity.Client),
		users:     make(map[string]*entity.User),
	}
}

func copyDocument(d *entity.Document) *entity.Document {
	cp := *d
	cp.Items = append([]entity.LineItem(nil), d.Items...)
	if d.Related != nil {
		r := *d.Related
		cp.Related = &r
	}
	if d.PaymentDate != nil {
		p := *d.PaymentDate
		cp.PaymentDate = &p
	}
	return &cp
}

func copyClient(c *entity.Client) *entity.Client {
	cp := *c
	return &cp
}

func copyUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func copyActivity(a *entity.UserActivity) *entity.UserActivity {
	cp := *a
	if a.DurationSeconds != nil {
		d := *a.DurationSeconds
		cp.DurationSeconds = &d
	}
	return &cp
}
